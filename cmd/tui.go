package cmd

import (
	"xytectl/internal/app"
	"xytectl/internal/screen"

	"github.com/spf13/cobra"
)

var tuiScreen string

func newTUICmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive terminal UI",
		Long: `Starts the interactive terminal UI. This is also what xytectl runs when no
subcommand is given.

Keys:
  ←/→ or h/l   switch tabs
  tab          move pane focus
  ↑/↓ or k/j   select a list row
  r            refresh the current screen
  y            copy the current frame as JSON to the clipboard
  ?            toggle help
  q, ctrl+c    quit`,
		Args: cobra.NoArgs,
		RunE: runTUI,
	}
	c.Flags().StringVar(&tuiScreen, "screen", string(screen.Dashboard), "Screen to open first")
	return c
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg := newAppConfig(cmd, app.ModeTUI)
	start := screen.Dashboard
	if tuiScreen != "" {
		id, err := screen.Parse(tuiScreen)
		if err != nil {
			return err
		}
		start = id
	}
	cfg.Start = start
	return runApplication(cmd, cfg)
}
