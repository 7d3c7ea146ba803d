package etims

import (
	"fmt"
)

// CmdPurchases handles registered purchases commands
func (c *Client) CmdPurchases(args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: etims-cli purchases <subcommand> [args...]")
		fmt.Println("Subcommands: list, get, search, create-supplier, validate-items, create-items, create-invoice")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  etims-cli purchases list")
		fmt.Println("  etims-cli purchases search")
		fmt.Println("  etims-cli purchases get \"REG-PUR-0007\"")
		fmt.Println("  etims-cli purchases create-supplier \"REG-PUR-0007\"")
		fmt.Println("  etims-cli purchases validate-items \"REG-PUR-0007\"")
		fmt.Println("  etims-cli purchases create-items \"REG-PUR-0007\"")
		fmt.Println("  etims-cli purchases create-invoice \"REG-PUR-0007\"")
		return nil
	}

	switch args[0] {
	case "list":
		return c.purchasesList()
	case "get":
		if len(args) < 2 {
			return fmt.Errorf("usage: etims-cli purchases get <name>")
		}
		return c.purchasesGet(args[1])
	case "search":
		return c.purchasesSearch()
	case "create-supplier":
		if len(args) < 2 {
			return fmt.Errorf("usage: etims-cli purchases create-supplier <name>")
		}
		return c.purchasesCreateSupplier(args[1])
	case "validate-items":
		if len(args) < 2 {
			return fmt.Errorf("usage: etims-cli purchases validate-items <name>")
		}
		return c.purchasesValidateItems(args[1])
	case "create-items":
		if len(args) < 2 {
			return fmt.Errorf("usage: etims-cli purchases create-items <name>")
		}
		return c.purchasesCreateItems(args[1])
	case "create-invoice":
		if len(args) < 2 {
			return fmt.Errorf("usage: etims-cli purchases create-invoice <name>")
		}
		return c.purchasesCreateInvoice(args[1])
	default:
		return fmt.Errorf("unknown purchases subcommand: %s", args[0])
	}
}

func (c *Client) purchasesList() error {
	fmt.Printf("%sFetching registered purchases...%s\n", Blue, Reset)

	docs, err := c.listDocs(DoctypeRegPurchases, []string{"name", "supplier_name", "supplier_pin", "supplier_invoice_no"})
	if err != nil {
		return err
	}

	if len(docs) == 0 {
		fmt.Printf("%sNo registered purchases found%s\n", Yellow, Reset)
		return nil
	}

	fmt.Printf("\n%sRegistered Purchases (%d):%s\n", Cyan, len(docs), Reset)
	for _, doc := range docs {
		name := doc["name"]
		supplier := doc["supplier_name"]
		invoice := doc["supplier_invoice_no"]

		fmt.Printf("  %s", name)
		if supplier != nil && supplier != "" {
			fmt.Printf(" - %s%s%s", Yellow, supplier, Reset)
		}
		if invoice != nil && invoice != "" {
			fmt.Printf(" (inv %v)", invoice)
		}
		fmt.Println()
	}
	return nil
}

func (c *Client) purchasesGet(name string) error {
	fmt.Printf("%sFetching registered purchase: %s%s\n", Blue, name, Reset)

	doc, err := c.fetchDoc(DoctypeRegPurchases, name)
	if err != nil {
		return err
	}

	printDoc(doc, []string{
		"name", "supplier_name", "supplier_pin", "supplier_branch_id",
		"supplier_invoice_no", "supplier_invoice_date",
	})

	if items := docItems(doc); len(items) > 0 {
		fmt.Printf("\n%sItems (%d):%s\n", Cyan, len(items), Reset)
		for _, item := range items {
			if im, ok := item.(map[string]interface{}); ok {
				fmt.Printf("  • %v x%v\n", im["item_name"], im["quantity"])
			}
		}
	}
	return nil
}

// purchasesSearch asks the server to fetch purchases registered against the
// taxpayer from every active branch. Mirrors the list-view menu action.
func (c *Client) purchasesSearch() error {
	fmt.Printf("%sRequesting purchases search for all branches...%s\n", Blue, Reset)

	args, err := requestData(companyPayload(c.Config.Company))
	if err != nil {
		return err
	}
	if _, err := c.CallMethod(MethodPurchasesSearchAll, args); err != nil {
		return err
	}

	printQueued()
	return nil
}

// purchasesCreateSupplier creates a Supplier record on the server from a
// fetched registered purchase. Mirrors the form button.
func (c *Client) purchasesCreateSupplier(name string) error {
	fmt.Printf("%sCreating supplier from registered purchase: %s%s\n", Blue, name, Reset)

	doc, err := c.fetchDoc(DoctypeRegPurchases, name)
	if err != nil {
		return err
	}

	args, err := requestData(supplierPayload(doc, c.Config.Company))
	if err != nil {
		return err
	}
	if _, err := c.CallMethod(MethodCreateSupplierFromReg, args); err != nil {
		return err
	}

	printQueued()
	return nil
}

// purchasesValidateItems checks whether every purchased item is mapped to a
// registered Item on the server. This endpoint replies synchronously.
func (c *Client) purchasesValidateItems(name string) error {
	fmt.Printf("%sValidating item mapping for: %s%s\n", Blue, name, Reset)

	doc, err := c.fetchDoc(DoctypeRegPurchases, name)
	if err != nil {
		return err
	}

	args, err := itemsArg(docItems(doc))
	if err != nil {
		return err
	}
	result, err := c.CallMethod(MethodValidateItemsRegistered, args)
	if err != nil {
		return err
	}

	if mapped, ok := result["message"].(bool); ok && mapped {
		fmt.Printf("%s✓ All items are mapped and registered%s\n", Green, Reset)
	} else {
		fmt.Printf("%sSome items are not yet mapped or registered. Create them first with: purchases create-items %s%s\n", Yellow, name, Reset)
	}
	return nil
}

// purchasesCreateItems creates Item records on the server for every row of
// a fetched registered purchase. Mirrors the form button.
func (c *Client) purchasesCreateItems(name string) error {
	fmt.Printf("%sCreating items from registered purchase: %s%s\n", Blue, name, Reset)

	doc, err := c.fetchDoc(DoctypeRegPurchases, name)
	if err != nil {
		return err
	}

	args, err := requestData(purchaseItemsPayload(doc, c.Config.Company))
	if err != nil {
		return err
	}
	if _, err := c.CallMethod(MethodCreateItemsFromReg, args); err != nil {
		return err
	}

	printQueued()
	return nil
}

// purchasesCreateInvoice creates a Purchase Invoice on the server from a
// fetched registered purchase. Mirrors the form button.
func (c *Client) purchasesCreateInvoice(name string) error {
	fmt.Printf("%sCreating purchase invoice from: %s%s\n", Blue, name, Reset)

	doc, err := c.fetchDoc(DoctypeRegPurchases, name)
	if err != nil {
		return err
	}

	args, err := requestData(purchaseInvoicePayload(doc, c.Config.Company))
	if err != nil {
		return err
	}
	if _, err := c.CallMethod(MethodCreatePurchaseInvoice, args); err != nil {
		return err
	}

	printQueued()
	return nil
}
