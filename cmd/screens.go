package cmd

import (
	"fmt"
	"strings"

	"xytectl/internal/screen"
	"xytectl/internal/tablefmt"

	"github.com/spf13/cobra"
)

func newScreensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "screens",
		Short: "List the screens in tab order",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(screenLines(), "\n"))
		},
	}
}

func screenLines() []string {
	rows := make([][]string, 0, len(screen.TabOrder()))
	for _, id := range screen.TabOrder() {
		gated := "no"
		if screen.IsOperational(id) {
			gated = "yes"
		}
		rows = append(rows, []string{string(id), screen.Title(id), gated, strings.Join(screen.Panes(id), ",")})
	}
	return tablefmt.RenderLines([]string{"ID", "TITLE", "GATED", "PANES"}, rows)
}
