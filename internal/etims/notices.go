package etims

import (
	"fmt"
)

// CmdNotices handles tax authority notice commands
func (c *Client) CmdNotices(args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: etims-cli notices <subcommand>")
		fmt.Println("Subcommands: list, search")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  etims-cli notices list")
		fmt.Println("  etims-cli notices search")
		return nil
	}

	switch args[0] {
	case "list":
		return c.noticesList()
	case "search":
		return c.noticesSearch()
	default:
		return fmt.Errorf("unknown notices subcommand: %s", args[0])
	}
}

func (c *Client) noticesList() error {
	fmt.Printf("%sFetching notices...%s\n", Blue, Reset)

	docs, err := c.listDocs(DoctypeNotices, []string{"name", "title", "notice_number"})
	if err != nil {
		return err
	}

	if len(docs) == 0 {
		fmt.Printf("%sNo notices found%s\n", Yellow, Reset)
		return nil
	}

	fmt.Printf("\n%sNotices (%d):%s\n", Cyan, len(docs), Reset)
	for _, doc := range docs {
		fmt.Printf("  %s", doc["name"])
		if title := doc["title"]; title != nil && title != "" {
			fmt.Printf(" - %s%s%s", Yellow, title, Reset)
		}
		fmt.Println()
	}
	return nil
}

// noticesSearch asks the server to pull recent notices from the tax
// authority.
func (c *Client) noticesSearch() error {
	fmt.Printf("%sRequesting notice search...%s\n", Blue, Reset)

	args, err := requestData(companyPayload(c.Config.Company))
	if err != nil {
		return err
	}
	if _, err := c.CallMethod(MethodNoticeSearch, args); err != nil {
		return err
	}

	printQueued()
	return nil
}
