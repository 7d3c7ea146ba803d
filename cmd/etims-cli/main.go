package main

import (
	"fmt"
	"os"

	"github.com/etims-tools/etims-cli/internal/etims"
)

func main() {
	// No arguments or "tui" command -> launch TUI
	if len(os.Args) < 2 || os.Args[1] == "tui" {
		config, err := etims.LoadConfig()
		if err != nil {
			fmt.Printf("%sError: %s%s\n", etims.Red, err, etims.Reset)
			os.Exit(1)
		}
		client := etims.NewClient(config)
		if err := etims.RunTUI(client); err != nil {
			fmt.Printf("%sError: %s%s\n", etims.Red, err, etims.Reset)
			os.Exit(1)
		}
		os.Exit(0)
	}

	cmd := os.Args[1]

	// Help doesn't need config
	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		printUsage()
		os.Exit(0)
	}

	// Version
	if cmd == "version" || cmd == "-v" || cmd == "--version" {
		fmt.Printf("eTims CLI v%s\n", etims.Version)
		os.Exit(0)
	}

	// Load config
	config, err := etims.LoadConfig()
	if err != nil {
		fmt.Printf("%sError: %s%s\n", etims.Red, err, etims.Reset)
		os.Exit(1)
	}

	// Create client
	client := etims.NewClient(config)

	// Detect connection mode (except for ping/config which do it themselves)
	if cmd != "ping" && cmd != "config" {
		client.DetectConnection()
	}

	// Route commands
	var cmdErr error
	switch cmd {
	case "ping":
		cmdErr = client.CmdPing()
	case "etims-ping":
		cmdErr = client.CmdEtimsPing()
	case "config":
		cmdErr = client.CmdConfig()
	case "user":
		cmdErr = client.CmdUser(os.Args[2:])
	case "branch":
		cmdErr = client.CmdBranch(os.Args[2:])
	case "purchases":
		cmdErr = client.CmdPurchases(os.Args[2:])
	case "item":
		cmdErr = client.CmdItem(os.Args[2:])
	case "stock":
		cmdErr = client.CmdStock(os.Args[2:])
	case "notices":
		cmdErr = client.CmdNotices(os.Args[2:])
	default:
		fmt.Printf("%sUnknown command: %s%s\n", etims.Red, cmd, etims.Reset)
		printUsage()
		os.Exit(1)
	}

	if cmdErr != nil {
		fmt.Printf("%sError: %s%s\n", etims.Red, cmdErr, etims.Reset)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`%seTims CLI%s - terminal client for the eTims compliance app

Usage: etims-cli <command> [subcommand] [args...]

%sCommands:%s

  %sping%s                              Test connection and authentication
  %setims-ping%s                        Ask the server to check KRA connectivity
  %sconfig%s                            Show current configuration
  %sversion%s                           Show version information
  %stui%s                               Launch the full-screen client (default)

%sBranch Users:%s
  %suser list%s                         List branch users
  %suser get <name>%s                   Get branch user details
  %suser submit <name>%s                Submit branch user details to the tax authority
  %suser bulk-create%s                  Create branch users for all active branches

%sBranches:%s
  %sbranch search%s                     Fetch registered branches from the tax authority

%sRegistered Purchases:%s
  %spurchases list%s                    List fetched registered purchases
  %spurchases get <name>%s              Get a registered purchase with items
  %spurchases search%s                  Fetch purchases for all active branches
  %spurchases create-supplier <name>%s  Create a supplier from a fetched purchase
  %spurchases validate-items <name>%s   Check item mapping and registration
  %spurchases create-items <name>%s     Create items from a fetched purchase
  %spurchases create-invoice <name>%s   Create a purchase invoice from a fetched purchase

%sItem Registry:%s
  %sitem list%s                         List items not yet registered
  %sitem import-search%s                Fetch imported items for all active branches
  %sitem register <name> [name...]%s    Register one or more items

%sStock Movements:%s
  %sstock list%s                        List fetched registered stock movements
  %sstock get <name>%s                  Get a stock movement with items
  %sstock search%s                      Fetch stock movements for all active branches
  %sstock create-entry <name>%s         Create a stock entry from a fetched movement

%sNotices:%s
  %snotices list%s                      List fetched tax authority notices
  %snotices search%s                    Fetch recent notices

%sExamples:%s
  etims-cli ping
  etims-cli purchases search
  etims-cli purchases create-invoice "REG-PUR-0007"
  etims-cli user submit "ETIMS-USR-0001"

`,
		etims.Blue, etims.Reset,
		etims.Yellow, etims.Reset,
		etims.Green, etims.Reset, etims.Green, etims.Reset, etims.Green, etims.Reset,
		etims.Green, etims.Reset, etims.Green, etims.Reset,
		etims.Yellow, etims.Reset,
		etims.Green, etims.Reset, etims.Green, etims.Reset, etims.Green, etims.Reset, etims.Green, etims.Reset,
		etims.Yellow, etims.Reset,
		etims.Green, etims.Reset,
		etims.Yellow, etims.Reset,
		etims.Green, etims.Reset, etims.Green, etims.Reset, etims.Green, etims.Reset, etims.Green, etims.Reset,
		etims.Green, etims.Reset, etims.Green, etims.Reset, etims.Green, etims.Reset,
		etims.Yellow, etims.Reset,
		etims.Green, etims.Reset, etims.Green, etims.Reset, etims.Green, etims.Reset,
		etims.Yellow, etims.Reset,
		etims.Green, etims.Reset, etims.Green, etims.Reset, etims.Green, etims.Reset, etims.Green, etims.Reset,
		etims.Yellow, etims.Reset,
		etims.Green, etims.Reset, etims.Green, etims.Reset,
		etims.Yellow, etims.Reset,
	)
}
