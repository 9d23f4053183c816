package cmd

import (
	"context"

	"github.com/flowlens/flowlens/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [flow-records-file]",
	Short: "Start the Flowlens MCP server",
	Long:  `Launch an MCP server that allows AI agents to run flow analysis via standard tools.`,
	Args:  cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Setup runs normally; tool handlers clone the validated config
		// per call so agent overrides never leak between requests.
		return sharedSetup(cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(context.Background(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
