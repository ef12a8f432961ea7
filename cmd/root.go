package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the gmailfilter application
var rootCmd = &cobra.Command{
	Use:   "gmailfilter",
	Short: "Categorizes emails through a Gemini-driven MCP tool conversation",
	Long: `gmailfilter is a conversational email-categorization agent. It sends
email bodies to the Gemini API together with the tool catalog discovered
from an MCP server, executes the function call the model requests, and
reports the decoded category.

It can run as:
  - An interactive chat shell (default)
  - A one-shot email fetch over the configured MCP tool server`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "gmailfilter version %s\n" .Version}}`)

	// If no subcommand is provided, run the chat command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "chat")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newChatCmd())
	rootCmd.AddCommand(newFetchCmd())
	rootCmd.AddCommand(newVersionCmd())
}
