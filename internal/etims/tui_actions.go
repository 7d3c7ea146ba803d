package etims

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// handleConfirmAction fires the confirmed remote call. Every action issues
// exactly one call; the server owns the outcome.
func (m *Model) handleConfirmAction(confirmed bool) tea.Cmd {
	m.view = m.prevView
	if !confirmed {
		return nil
	}

	m.loading = true

	switch m.confirmAction {
	case "submit_user":
		return m.submitUserDetails(m.selectedItem)
	case "bulk_create_users":
		return m.bulkCreateUsers()
	case "create_supplier":
		return m.purchaseAction(MethodCreateSupplierFromReg, supplierPayload)
	case "create_items":
		return m.purchaseAction(MethodCreateItemsFromReg, purchaseItemsPayload)
	case "create_invoice":
		return m.purchaseAction(MethodCreatePurchaseInvoice, purchaseInvoicePayload)
	case "register_item":
		return m.registerItem(m.selectedItem)
	case "register_all":
		return m.registerAllItems()
	case "create_stock_entry":
		return m.createStockEntry(m.selectedItem)
	}

	return nil
}

// remoteSearch fires one of the all-branches search endpoints.
func (m Model) remoteSearch(method string) tea.Cmd {
	return func() tea.Msg {
		args, err := requestData(companyPayload(m.client.Config.Company))
		if err != nil {
			return errorMsg{err}
		}
		if _, err := m.client.CallMethod(method, args); err != nil {
			return errorMsg{err}
		}
		return queuedAckMsg{}
	}
}

func (m Model) submitUserDetails(name string) tea.Cmd {
	return func() tea.Msg {
		doc, err := m.client.fetchDoc(DoctypeBranchUser, name)
		if err != nil {
			return errorMsg{err}
		}

		args, err := requestData(branchUserPayload(doc, m.client.Config.Company))
		if err != nil {
			return errorMsg{err}
		}
		if _, err := m.client.CallMethod(MethodSaveBranchUserDetails, args); err != nil {
			return errorMsg{err}
		}
		return queuedAckMsg{}
	}
}

func (m Model) bulkCreateUsers() tea.Cmd {
	return func() tea.Msg {
		args, err := requestData(companyPayload(m.client.Config.Company))
		if err != nil {
			return errorMsg{err}
		}
		if _, err := m.client.CallMethod(MethodCreateBranchUser, args); err != nil {
			return errorMsg{err}
		}
		return queuedAckMsg{}
	}
}

// purchaseAction resolves the selected registered purchase once and forwards
// the built payload to the given endpoint.
func (m Model) purchaseAction(method string, payload func(map[string]interface{}, string) map[string]interface{}) tea.Cmd {
	name := m.selectedItem
	return func() tea.Msg {
		doc, err := m.client.fetchDoc(DoctypeRegPurchases, name)
		if err != nil {
			return errorMsg{err}
		}

		args, err := requestData(payload(doc, m.client.Config.Company))
		if err != nil {
			return errorMsg{err}
		}
		if _, err := m.client.CallMethod(method, args); err != nil {
			return errorMsg{err}
		}
		return queuedAckMsg{}
	}
}

func (m Model) validatePurchaseItems() tea.Cmd {
	name := m.selectedItem
	return func() tea.Msg {
		doc, err := m.client.fetchDoc(DoctypeRegPurchases, name)
		if err != nil {
			return errorMsg{err}
		}

		args, err := itemsArg(docItems(doc))
		if err != nil {
			return errorMsg{err}
		}
		result, err := m.client.CallMethod(MethodValidateItemsRegistered, args)
		if err != nil {
			return errorMsg{err}
		}

		mapped, _ := result["message"].(bool)
		return validationMsg{mapped: mapped}
	}
}

func (m Model) registerItem(name string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.client.CallMethod(MethodRegisterSingleItem, map[string]interface{}{"record": name}); err != nil {
			return errorMsg{err}
		}
		return queuedAckMsg{}
	}
}

func (m Model) registerAllItems() tea.Cmd {
	var names []string
	for _, item := range m.currentList.Items() {
		if li, ok := item.(ListItem); ok {
			names = append(names, li.name)
		}
	}

	return func() tea.Msg {
		if len(names) == 0 {
			return queuedAckMsg{}
		}

		args, err := docsListArg(names)
		if err != nil {
			return errorMsg{err}
		}
		if _, err := m.client.CallMethodThrottled(context.Background(), MethodBulkRegisterItems, args); err != nil {
			return errorMsg{err}
		}
		return queuedAckMsg{}
	}
}

func (m Model) createStockEntry(name string) tea.Cmd {
	return func() tea.Msg {
		doc, err := m.client.fetchDoc(DoctypeStockMovement, name)
		if err != nil {
			return errorMsg{err}
		}

		args, err := requestData(stockEntryPayload(doc, m.client.Config.Company))
		if err != nil {
			return errorMsg{err}
		}
		if _, err := m.client.CallMethod(MethodCreateStockEntry, args); err != nil {
			return errorMsg{err}
		}
		return queuedAckMsg{}
	}
}
