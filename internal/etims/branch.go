package etims

import (
	"fmt"
)

// CmdBranch handles branch commands
func (c *Client) CmdBranch(args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: etims-cli branch <subcommand>")
		fmt.Println("Subcommands: search")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  etims-cli branch search")
		return nil
	}

	switch args[0] {
	case "search":
		return c.branchSearch()
	default:
		return fmt.Errorf("unknown branch subcommand: %s", args[0])
	}
}

// branchSearch asks the server to pull registered branches from the tax
// authority into the Branch doctype.
func (c *Client) branchSearch() error {
	fmt.Printf("%sRequesting branch search...%s\n", Blue, Reset)

	args, err := requestData(companyPayload(c.Config.Company))
	if err != nil {
		return err
	}
	if _, err := c.CallMethod(MethodSearchBranchRequest, args); err != nil {
		return err
	}

	printQueued()
	return nil
}
