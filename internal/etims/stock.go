package etims

import (
	"fmt"
)

// CmdStock handles registered stock movement commands
func (c *Client) CmdStock(args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: etims-cli stock <subcommand> [args...]")
		fmt.Println("Subcommands: list, get, search, create-entry")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  etims-cli stock list")
		fmt.Println("  etims-cli stock search")
		fmt.Println("  etims-cli stock get \"REG-MVT-0012\"")
		fmt.Println("  etims-cli stock create-entry \"REG-MVT-0012\"")
		return nil
	}

	switch args[0] {
	case "list":
		return c.stockList()
	case "get":
		if len(args) < 2 {
			return fmt.Errorf("usage: etims-cli stock get <name>")
		}
		return c.stockGet(args[1])
	case "search":
		return c.stockSearch()
	case "create-entry":
		if len(args) < 2 {
			return fmt.Errorf("usage: etims-cli stock create-entry <name>")
		}
		return c.stockCreateEntry(args[1])
	default:
		return fmt.Errorf("unknown stock subcommand: %s", args[0])
	}
}

func (c *Client) stockList() error {
	fmt.Printf("%sFetching registered stock movements...%s\n", Blue, Reset)

	docs, err := c.listDocs(DoctypeStockMovement, []string{"name", "branch_id"})
	if err != nil {
		return err
	}

	if len(docs) == 0 {
		fmt.Printf("%sNo registered stock movements found%s\n", Yellow, Reset)
		return nil
	}

	fmt.Printf("\n%sRegistered Stock Movements (%d):%s\n", Cyan, len(docs), Reset)
	for _, doc := range docs {
		fmt.Printf("  %s", doc["name"])
		if branch := doc["branch_id"]; branch != nil && branch != "" {
			fmt.Printf(" - %sbranch %s%s", Yellow, branch, Reset)
		}
		fmt.Println()
	}
	return nil
}

func (c *Client) stockGet(name string) error {
	fmt.Printf("%sFetching registered stock movement: %s%s\n", Blue, name, Reset)

	doc, err := c.fetchDoc(DoctypeStockMovement, name)
	if err != nil {
		return err
	}

	printDoc(doc, []string{"name", "branch_id", "company"})

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

// stockSearch asks the server to pull registered stock movements from the
// tax authority for every active branch. Mirrors the list-view menu action.
func (c *Client) stockSearch() error {
	fmt.Printf("%sRequesting stock movement search for all branches...%s\n", Blue, Reset)

	args, err := requestData(companyPayload(c.Config.Company))
	if err != nil {
		return err
	}
	if _, err := c.CallMethod(MethodStockMovementSearchAll, args); err != nil {
		return err
	}

	printQueued()
	return nil
}

// stockCreateEntry creates an ERPNext Stock Entry on the server from a
// fetched registered stock movement. Mirrors the form button.
func (c *Client) stockCreateEntry(name string) error {
	fmt.Printf("%sCreating stock entry from movement: %s%s\n", Blue, name, Reset)

	doc, err := c.fetchDoc(DoctypeStockMovement, name)
	if err != nil {
		return err
	}

	args, err := requestData(stockEntryPayload(doc, c.Config.Company))
	if err != nil {
		return err
	}
	if _, err := c.CallMethod(MethodCreateStockEntry, args); err != nil {
		return err
	}

	printQueued()
	return nil
}
