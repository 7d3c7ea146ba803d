package etims

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registeredPurchaseDoc() map[string]interface{} {
	return map[string]interface{}{
		"name":                    "REG-PUR-0007",
		"company":                 "Savanna Traders Ltd",
		"supplier_name":           "Mombasa Hardware",
		"supplier_pin":            "P051234567A",
		"supplier_branch_id":      "00",
		"supplier_invoice_number": "INV-991",
		"supplier_invoice_date":   "2026-08-01",
		"items": []interface{}{
			map[string]interface{}{
				"item_name":                "Cement 50kg",
				"quantity":                 10.0,
				"taxation_type_code":       "B",
				"item_classification_code": "26101500",
			},
		},
	}
}

func purchaseRecorder(t *testing.T) *methodRecorder {
	return &methodRecorder{
		t: t,
		docs: map[string]map[string]interface{}{
			"/api/resource/eTims Registered Purchases/REG-PUR-0007": registeredPurchaseDoc(),
		},
	}
}

func TestCreateInvoiceIssuesExactlyOneCall(t *testing.T) {
	recorder := purchaseRecorder(t)
	client := newTestClient(t, recorder)

	require.NoError(t, client.purchasesCreateInvoice("REG-PUR-0007"))

	require.Len(t, recorder.calls, 1)
	call := recorder.calls[0]
	assert.Equal(t, MethodCreatePurchaseInvoice, call.method)

	payload := requestDataOf(t, call)
	assert.Equal(t, "REG-PUR-0007", payload["name"])
	assert.Equal(t, "Savanna Traders Ltd", payload["company_name"])
	assert.Equal(t, "Mombasa Hardware", payload["supplier_name"])
	assert.Equal(t, "P051234567A", payload["supplier_pin"])
	assert.Equal(t, "00", payload["supplier_branch_id"])
	assert.Equal(t, "INV-991", payload["supplier_invoice_no"])
	assert.Equal(t, "2026-08-01", payload["supplier_invoice_date"])

	items, ok := payload["items"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
	row := items[0].(map[string]interface{})
	assert.Equal(t, "Cement 50kg", row["item_name"])
	assert.Equal(t, "26101500", row["item_classification_code"])
}

func TestCreateSupplierPayloadShape(t *testing.T) {
	recorder := purchaseRecorder(t)
	client := newTestClient(t, recorder)

	require.NoError(t, client.purchasesCreateSupplier("REG-PUR-0007"))

	require.Len(t, recorder.calls, 1)
	call := recorder.calls[0]
	assert.Equal(t, MethodCreateSupplierFromReg, call.method)
	assert.Equal(t, map[string]interface{}{
		"name":               "REG-PUR-0007",
		"company_name":       "Savanna Traders Ltd",
		"supplier_name":      "Mombasa Hardware",
		"supplier_pin":       "P051234567A",
		"supplier_branch_id": "00",
	}, requestDataOf(t, call))
}

func TestCreateItemsForwardsRowsVerbatim(t *testing.T) {
	recorder := purchaseRecorder(t)
	client := newTestClient(t, recorder)

	require.NoError(t, client.purchasesCreateItems("REG-PUR-0007"))

	require.Len(t, recorder.calls, 1)
	call := recorder.calls[0]
	assert.Equal(t, MethodCreateItemsFromReg, call.method)

	payload := requestDataOf(t, call)
	assert.Equal(t, docItems(registeredPurchaseDoc()), payload["items"])
}

func TestValidateItemsSendsRowsDirectly(t *testing.T) {
	recorder := purchaseRecorder(t)
	recorder.reply = map[string]interface{}{"message": true}
	client := newTestClient(t, recorder)

	require.NoError(t, client.purchasesValidateItems("REG-PUR-0007"))

	require.Len(t, recorder.calls, 1)
	call := recorder.calls[0]
	assert.Equal(t, MethodValidateItemsRegistered, call.method)

	// validate takes items as a JSON string, not request_data
	encoded, ok := call.args["items"].(string)
	require.True(t, ok)

	var rows []interface{}
	require.NoError(t, json.Unmarshal([]byte(encoded), &rows))
	assert.Equal(t, docItems(registeredPurchaseDoc()), rows)
}

func TestPurchasesSearchSendsCompany(t *testing.T) {
	recorder := &methodRecorder{t: t}
	client := newTestClient(t, recorder)

	require.NoError(t, client.purchasesSearch())

	require.Len(t, recorder.calls, 1)
	call := recorder.calls[0]
	assert.Equal(t, MethodPurchasesSearchAll, call.method)
	assert.Equal(t, map[string]interface{}{
		"company_name": "Savanna Traders Ltd",
	}, requestDataOf(t, call))
}

func TestItemRegisterSingleVsBulk(t *testing.T) {
	recorder := &methodRecorder{t: t}
	client := newTestClient(t, recorder)

	require.NoError(t, client.itemRegister([]string{"CPU-I7"}))
	require.Len(t, recorder.calls, 1)
	assert.Equal(t, MethodRegisterSingleItem, recorder.calls[0].method)
	assert.Equal(t, "CPU-I7", recorder.calls[0].args["record"])

	require.NoError(t, client.itemRegister([]string{"CPU-I7", "PSU-500W"}))
	require.Len(t, recorder.calls, 2)
	assert.Equal(t, MethodBulkRegisterItems, recorder.calls[1].method)

	encoded, ok := recorder.calls[1].args["docs_list"].(string)
	require.True(t, ok)
	assert.JSONEq(t, `["CPU-I7","PSU-500W"]`, encoded)
}

func TestStockCreateEntryIssuesExactlyOneCall(t *testing.T) {
	recorder := &methodRecorder{
		t: t,
		docs: map[string]map[string]interface{}{
			"/api/resource/eTims Registered Stock Movement/REG-MVT-0012": {
				"name":      "REG-MVT-0012",
				"branch_id": "02",
				"items": []interface{}{
					map[string]interface{}{"item_name": "Cement 50kg", "quantity": 4.0},
				},
			},
		},
	}
	client := newTestClient(t, recorder)

	require.NoError(t, client.stockCreateEntry("REG-MVT-0012"))

	require.Len(t, recorder.calls, 1)
	call := recorder.calls[0]
	assert.Equal(t, MethodCreateStockEntry, call.method)

	payload := requestDataOf(t, call)
	assert.Equal(t, "REG-MVT-0012", payload["name"])
	assert.Equal(t, "02", payload["branch_id"])
	// No company on the record: fall back to the configured default
	assert.Equal(t, "Savanna Traders Ltd", payload["company_name"])
}
