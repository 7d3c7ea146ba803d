package etims

import (
	"context"
	"fmt"
)

// CmdItem handles item registry commands
func (c *Client) CmdItem(args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: etims-cli item <subcommand> [args...]")
		fmt.Println("Subcommands: list, import-search, register")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  etims-cli item list")
		fmt.Println("  etims-cli item import-search")
		fmt.Println("  etims-cli item register \"CPU-I7\"")
		fmt.Println("  etims-cli item register \"CPU-I7\" \"PSU-500W\" \"RAM-16GB\"")
		return nil
	}

	switch args[0] {
	case "list":
		return c.itemList()
	case "import-search":
		return c.itemImportSearch()
	case "register":
		if len(args) < 2 {
			return fmt.Errorf("usage: etims-cli item register <name> [name...]")
		}
		return c.itemRegister(args[1:])
	default:
		return fmt.Errorf("unknown item subcommand: %s", args[0])
	}
}

// itemList shows items that have not been registered with the tax authority
// yet.
func (c *Client) itemList() error {
	fmt.Printf("%sFetching unregistered items...%s\n", Blue, Reset)

	filters, err := encodeFilters([][]interface{}{{"custom_item_registered", "=", 0}})
	if err != nil {
		return err
	}

	result, err := c.Request("GET", "Item?limit_page_length=0&filters="+filters, nil)
	if err != nil {
		return err
	}

	data, _ := result["data"].([]interface{})
	if len(data) == 0 {
		fmt.Printf("%sNo unregistered items found%s\n", Yellow, Reset)
		return nil
	}

	fmt.Printf("\n%sUnregistered Items (%d):%s\n", Cyan, len(data), Reset)
	for _, item := range data {
		if m, ok := item.(map[string]interface{}); ok {
			fmt.Printf("  %v\n", m["name"])
		}
	}
	return nil
}

// itemImportSearch asks the server to pull imported items from the tax
// authority for every active branch. Mirrors the list-view menu action.
func (c *Client) itemImportSearch() error {
	fmt.Printf("%sRequesting imported item search for all branches...%s\n", Blue, Reset)

	args, err := requestData(companyPayload(c.Config.Company))
	if err != nil {
		return err
	}
	if _, err := c.CallMethod(MethodImportItemSearchAll, args); err != nil {
		return err
	}

	printQueued()
	return nil
}

// itemRegister registers one or more items with the tax authority. A single
// name goes through the single-item endpoint, several through the bulk one.
func (c *Client) itemRegister(names []string) error {
	if len(names) == 1 {
		fmt.Printf("%sRegistering item: %s%s\n", Blue, names[0], Reset)

		if _, err := c.CallMethod(MethodRegisterSingleItem, map[string]interface{}{"record": names[0]}); err != nil {
			return err
		}
		printQueued()
		return nil
	}

	fmt.Printf("%sRegistering %d items...%s\n", Blue, len(names), Reset)

	args, err := docsListArg(names)
	if err != nil {
		return err
	}
	if _, err := c.CallMethodThrottled(context.Background(), MethodBulkRegisterItems, args); err != nil {
		return err
	}

	printQueued()
	return nil
}
