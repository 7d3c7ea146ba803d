package etims

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) loadUsers() tea.Cmd {
	return func() tea.Msg {
		docs, err := m.client.listDocs(DoctypeBranchUser, []string{"name", "users_full_names", "branch_id"})
		if err != nil {
			return errorMsg{err}
		}

		var items []ListItem
		for _, doc := range docs {
			name := fmt.Sprintf("%v", doc["name"])
			details := "Branch User"
			if branch, ok := doc["branch_id"].(string); ok && branch != "" {
				details = "Branch " + branch
			}
			items = append(items, ListItem{name: name, details: details})
		}
		return dataLoadedMsg{items}
	}
}

func (m Model) loadPurchases() tea.Cmd {
	return func() tea.Msg {
		docs, err := m.client.listDocs(DoctypeRegPurchases, []string{"name", "supplier_name", "supplier_invoice_no"})
		if err != nil {
			return errorMsg{err}
		}

		var items []ListItem
		for _, doc := range docs {
			name := fmt.Sprintf("%v", doc["name"])
			details := "Registered Purchase"
			if supplier, ok := doc["supplier_name"].(string); ok && supplier != "" {
				details = supplier
			}
			items = append(items, ListItem{name: name, details: details})
		}
		return dataLoadedMsg{items}
	}
}

func (m Model) loadUnregisteredItems() tea.Cmd {
	return func() tea.Msg {
		filters, err := encodeFilters([][]interface{}{{"custom_item_registered", "=", 0}})
		if err != nil {
			return errorMsg{err}
		}

		result, err := m.client.Request("GET", "Item?limit_page_length=0&filters="+filters, nil)
		if err != nil {
			return errorMsg{err}
		}

		var items []ListItem
		if data, ok := result["data"].([]interface{}); ok {
			for _, item := range data {
				if im, ok := item.(map[string]interface{}); ok {
					name := fmt.Sprintf("%v", im["name"])
					items = append(items, ListItem{name: name, details: "Not registered"})
				}
			}
		}
		return dataLoadedMsg{items}
	}
}

func (m Model) loadMovements() tea.Cmd {
	return func() tea.Msg {
		docs, err := m.client.listDocs(DoctypeStockMovement, []string{"name", "branch_id"})
		if err != nil {
			return errorMsg{err}
		}

		var items []ListItem
		for _, doc := range docs {
			name := fmt.Sprintf("%v", doc["name"])
			details := "Stock Movement"
			if branch, ok := doc["branch_id"].(string); ok && branch != "" {
				details = "Branch " + branch
			}
			items = append(items, ListItem{name: name, details: details})
		}
		return dataLoadedMsg{items}
	}
}

func (m Model) loadNotices() tea.Cmd {
	return func() tea.Msg {
		docs, err := m.client.listDocs(DoctypeNotices, []string{"name", "title"})
		if err != nil {
			return errorMsg{err}
		}

		var items []ListItem
		for _, doc := range docs {
			name := fmt.Sprintf("%v", doc["name"])
			details := "Notice"
			if title, ok := doc["title"].(string); ok && title != "" {
				details = title
			}
			items = append(items, ListItem{name: name, details: details})
		}
		return dataLoadedMsg{items}
	}
}

func (m Model) loadRecordDetail(doctype, name string) tea.Cmd {
	return func() tea.Msg {
		doc, err := m.client.fetchDoc(doctype, name)
		if err != nil {
			return errorMsg{err}
		}
		return recordDetailMsg{doc}
	}
}

func (m Model) renderRecordDetail() string {
	if m.loading {
		return fmt.Sprintf("\n  %s Loading...", m.spinner.View())
	}

	if m.itemData == nil {
		return "\n  No data"
	}

	var b strings.Builder

	switch m.view {
	case ViewUserDetail:
		b.WriteString(titleStyle.Render(" Branch User: "+m.selectedItem) + "\n\n")

		fields := []string{"system_user", "users_full_names", "branch_id", "company"}
		labels := []string{"User", "Full Names", "Branch", "Company"}
		for i, field := range fields {
			if val, ok := m.itemData[field]; ok && val != nil && val != "" {
				b.WriteString(fmt.Sprintf("  %s: %v\n", labels[i], val))
			}
		}

	case ViewPurchaseDetail:
		b.WriteString(titleStyle.Render(" Registered Purchase: "+m.selectedItem) + "\n\n")

		fields := []string{"supplier_name", "supplier_pin", "supplier_branch_id", "supplier_invoice_no", "supplier_invoice_date"}
		labels := []string{"Supplier", "PIN", "Branch", "Invoice No", "Invoice Date"}
		for i, field := range fields {
			if val, ok := m.itemData[field]; ok && val != nil && val != "" {
				b.WriteString(fmt.Sprintf("  %s: %v\n", labels[i], val))
			}
		}

		m.writeItemRows(&b)

	case ViewMovementDetail:
		b.WriteString(titleStyle.Render(" Stock Movement: "+m.selectedItem) + "\n\n")

		if branch, ok := m.itemData["branch_id"]; ok && branch != nil && branch != "" {
			b.WriteString(fmt.Sprintf("  Branch: %v\n", branch))
		}

		m.writeItemRows(&b)
	}

	return boxStyle.Render(b.String())
}

func (m Model) writeItemRows(b *strings.Builder) {
	items := docItems(m.itemData)
	if len(items) == 0 {
		return
	}

	b.WriteString(fmt.Sprintf("\n  Items (%d):\n", len(items)))
	for i, item := range items {
		if i >= 10 {
			b.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-10))
			break
		}
		if im, ok := item.(map[string]interface{}); ok {
			b.WriteString(fmt.Sprintf("    • %v x%v\n", im["item_name"], im["quantity"]))
		}
	}
}
