package cmd

import (
	"xytectl/internal/app"

	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve screen frames to agents over MCP stdio",
		Long: `Starts an MCP server on stdin/stdout exposing three tools:

  xyte_screens  tab order, titles and which screens are gated
  xyte_frame    one runtime frame for a screen, identical to 'xytectl headless'
  xyte_status   the screen runtime status snapshot

Register it with an MCP client as a stdio command, e.g. "xytectl mcp".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApplication(cmd, newAppConfig(cmd, app.ModeMCP))
		},
	}
}
