package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/gitshare/internal/iocache"
	"github.com/huangsam/gitshare/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Gitshare MCP server",
	Long:  `Launch an MCP server that allows AI agents to query contribution statistics via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Suppress the normal header logs when running in MCP mode
		// to avoid polluting stdio which is used for the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		mgr := storeManager
		if mgr == nil {
			mgr = iocache.Manager
		}
		return mcp.StartMCPServer(rootCtx, cfg, gitClient, mgr)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
