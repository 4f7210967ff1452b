// mcp_cmd.go implements "igr mcp": starts the MCP stdio server so an LLM
// client can drive the same search/apply/commit pipeline as the CLI.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/igr/internal/mcpserver"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server over stdio",
		RunE: func(_ *cobra.Command, _ []string) error {
			return mcpserver.Serve()
		},
	}
}

func init() {
	rootCmd.AddCommand(newMCPCmd())
}
