package etims

import (
	"fmt"
)

// CmdUser handles branch user commands
func (c *Client) CmdUser(args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: etims-cli user <subcommand> [args...]")
		fmt.Println("Subcommands: list, get, submit, bulk-create")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  etims-cli user list")
		fmt.Println("  etims-cli user get \"ETIMS-USR-0001\"")
		fmt.Println("  etims-cli user submit \"ETIMS-USR-0001\"")
		fmt.Println("  etims-cli user bulk-create")
		return nil
	}

	switch args[0] {
	case "list":
		return c.userList()
	case "get":
		if len(args) < 2 {
			return fmt.Errorf("usage: etims-cli user get <name>")
		}
		return c.userGet(args[1])
	case "submit":
		if len(args) < 2 {
			return fmt.Errorf("usage: etims-cli user submit <name>")
		}
		return c.userSubmit(args[1])
	case "bulk-create":
		return c.userBulkCreate()
	default:
		return fmt.Errorf("unknown user subcommand: %s", args[0])
	}
}

func (c *Client) userList() error {
	fmt.Printf("%sFetching branch users...%s\n", Blue, Reset)

	docs, err := c.listDocs(DoctypeBranchUser, []string{"name", "system_user", "users_full_names", "branch_id"})
	if err != nil {
		return err
	}

	if len(docs) == 0 {
		fmt.Printf("%sNo branch users found%s\n", Yellow, Reset)
		return nil
	}

	fmt.Printf("\n%sBranch Users (%d):%s\n", Cyan, len(docs), Reset)
	for _, doc := range docs {
		name := doc["name"]
		fullNames := doc["users_full_names"]
		branch := doc["branch_id"]

		if fullNames != nil && fullNames != name {
			fmt.Printf("  %s (%s)", name, fullNames)
		} else {
			fmt.Printf("  %s", name)
		}
		if branch != nil && branch != "" {
			fmt.Printf(" - %sbranch %s%s", Yellow, branch, Reset)
		}
		fmt.Println()
	}
	return nil
}

func (c *Client) userGet(name string) error {
	fmt.Printf("%sFetching branch user: %s%s\n", Blue, name, Reset)

	doc, err := c.fetchDoc(DoctypeBranchUser, name)
	if err != nil {
		return err
	}

	printDoc(doc, []string{"name", "system_user", "users_full_names", "branch_id", "company", "owner", "modified_by"})
	return nil
}

// userSubmit sends one branch user's details to the tax authority through
// the server. Mirrors the form button on the eTims User record.
func (c *Client) userSubmit(name string) error {
	fmt.Printf("%sSubmitting branch user details: %s%s\n", Blue, name, Reset)

	doc, err := c.fetchDoc(DoctypeBranchUser, name)
	if err != nil {
		return err
	}

	args, err := requestData(branchUserPayload(doc, c.Config.Company))
	if err != nil {
		return err
	}
	if _, err := c.CallMethod(MethodSaveBranchUserDetails, args); err != nil {
		return err
	}

	printQueued()
	return nil
}

// userBulkCreate asks the server to create branch users for every active
// branch. Mirrors the list-view menu action.
func (c *Client) userBulkCreate() error {
	fmt.Printf("%sRequesting bulk branch user creation...%s\n", Blue, Reset)

	args, err := requestData(companyPayload(c.Config.Company))
	if err != nil {
		return err
	}
	if _, err := c.CallMethod(MethodCreateBranchUser, args); err != nil {
		return err
	}

	printQueued()
	return nil
}
