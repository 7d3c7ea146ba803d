package etims

import (
	"encoding/json"
	"fmt"
)

// Dotted paths of the whitelisted methods exposed by the kra_etims_frappe
// app. Every UI action in this client maps to exactly one of these.
const (
	appModule = "kra_etims_frappe.kra_etims_frappe"

	MethodSaveBranchUserDetails   = appModule + ".apis.apis.save_branch_user_details"
	MethodCreateBranchUser        = appModule + ".apis.apis.create_branch_user"
	MethodSearchBranchRequest     = appModule + ".apis.apis.search_branch_request"
	MethodImportItemSearchAll     = appModule + ".apis.apis.perform_import_item_search_all_branches"
	MethodPurchasesSearchAll      = appModule + ".apis.apis.perform_purchases_search_all_branches"
	MethodStockMovementSearchAll  = appModule + ".apis.apis.perform_stock_movement_search_all_branches"
	MethodCreateSupplierFromReg   = appModule + ".apis.apis.create_supplier_from_fetched_registered_purchases"
	MethodCreateItemsFromReg      = appModule + ".apis.apis.create_items_from_fetched_registered_purchases"
	MethodCreatePurchaseInvoice   = appModule + ".apis.apis.create_purchase_invoice_from_request"
	MethodRegisterSingleItem      = appModule + ".apis.apis.process_single_item"
	MethodBulkRegisterItems       = appModule + ".apis.apis.bulk_register_item"
	MethodNoticeSearch            = appModule + ".apis.apis.perform_notice_search"
	MethodPingServer              = appModule + ".apis.apis.ping_server"
	MethodCreateStockEntry        = appModule + ".apis.apis.create_stock_entry_from_stock_movement"
	MethodValidateItemsRegistered = appModule + ".doctype.etims_registered_purchases.etims_registered_purchases.validate_item_mapped_and_registered"
)

// Doctypes this client reads through /api/resource
const (
	DoctypeBranchUser    = "eTims User"
	DoctypeRegPurchases  = "eTims Registered Purchases"
	DoctypeStockMovement = "eTims Registered Stock Movement"
	DoctypeNotices       = "eTims Notices"
)

// requestData wraps a flat payload as the request_data argument the
// whitelisted methods expect: a JSON string, not a nested object.
func requestData(payload map[string]interface{}) (map[string]interface{}, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request_data: %w", err)
	}
	return map[string]interface{}{"request_data": string(encoded)}, nil
}

// itemsArg encodes child-table rows for validate_item_mapped_and_registered,
// which takes items directly instead of request_data.
func itemsArg(items []interface{}) (map[string]interface{}, error) {
	encoded, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode items: %w", err)
	}
	return map[string]interface{}{"items": string(encoded)}, nil
}

// docsListArg encodes record names for the bulk registration methods.
func docsListArg(names []string) (map[string]interface{}, error) {
	encoded, err := json.Marshal(names)
	if err != nil {
		return nil, fmt.Errorf("failed to encode docs_list: %w", err)
	}
	return map[string]interface{}{"docs_list": string(encoded)}, nil
}

// strField returns the first non-empty string value among keys.
func strField(doc map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := doc[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// docItems returns the items child table rows untouched; the server owns
// their shape.
func docItems(doc map[string]interface{}) []interface{} {
	if items, ok := doc["items"].([]interface{}); ok {
		return items
	}
	return []interface{}{}
}

// docCompany resolves company_name for a record-scoped action: the record's
// company when set, otherwise the configured default.
func docCompany(doc map[string]interface{}, fallback string) string {
	if company := strField(doc, "company", "company_name"); company != "" {
		return company
	}
	return fallback
}

// Payload builders. Each produces exactly the flat request object its
// endpoint expects, with field values forwarded verbatim from the record.

func branchUserPayload(doc map[string]interface{}, company string) map[string]interface{} {
	return map[string]interface{}{
		"name":            strField(doc, "name"),
		"company_name":    docCompany(doc, company),
		"user_id":         strField(doc, "system_user", "email"),
		"full_names":      strField(doc, "users_full_names", "full_names"),
		"branch_id":       strField(doc, "branch_id"),
		"registration_id": strField(doc, "owner"),
		"modifier_id":     strField(doc, "modified_by"),
	}
}

func companyPayload(company string) map[string]interface{} {
	return map[string]interface{}{
		"company_name": company,
	}
}

func supplierPayload(doc map[string]interface{}, company string) map[string]interface{} {
	return map[string]interface{}{
		"name":               strField(doc, "name"),
		"company_name":       docCompany(doc, company),
		"supplier_name":      strField(doc, "supplier_name"),
		"supplier_pin":       strField(doc, "supplier_pin"),
		"supplier_branch_id": strField(doc, "supplier_branch_id"),
	}
}

func purchaseItemsPayload(doc map[string]interface{}, company string) map[string]interface{} {
	return map[string]interface{}{
		"name":         strField(doc, "name"),
		"company_name": docCompany(doc, company),
		"items":        docItems(doc),
	}
}

func purchaseInvoicePayload(doc map[string]interface{}, company string) map[string]interface{} {
	return map[string]interface{}{
		"name":                  strField(doc, "name"),
		"company_name":          docCompany(doc, company),
		"supplier_name":         strField(doc, "supplier_name"),
		"supplier_pin":          strField(doc, "supplier_pin"),
		"supplier_branch_id":    strField(doc, "supplier_branch_id"),
		"supplier_invoice_no":   strField(doc, "supplier_invoice_no", "supplier_invoice_number"),
		"supplier_invoice_date": strField(doc, "supplier_invoice_date"),
		"items":                 docItems(doc),
	}
}

func stockEntryPayload(doc map[string]interface{}, company string) map[string]interface{} {
	return map[string]interface{}{
		"name":         strField(doc, "name"),
		"company_name": docCompany(doc, company),
		"branch_id":    strField(doc, "branch_id"),
		"items":        docItems(doc),
	}
}
