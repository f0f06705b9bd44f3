package cmd

import (
	"github.com/huangsam/awrlens/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the awrlens MCP server",
	Long:  `Launch an MCP server that allows AI agents to parse dumps and assess migrations via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Verbose logs go to stderr, so stdio stays clean for the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, loader)
	},
}
