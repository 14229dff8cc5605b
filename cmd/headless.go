package cmd

import (
	"time"

	"xytectl/internal/app"
	"xytectl/internal/screen"

	"github.com/spf13/cobra"
)

type headlessFlags struct {
	screen            string
	follow            bool
	interval          time.Duration
	checkConnectivity bool
	format            string
	filter            string
	selected          int
}

func newHeadlessCmd() *cobra.Command {
	var f headlessFlags
	c := &cobra.Command{
		Use:   "headless",
		Short: "Emit screen frames as line-delimited JSON",
		Long: `Renders one screen without a terminal and writes protocol frames to stdout.

The first frame is always a startup frame. It is followed by one runtime frame,
or, with --follow, by a frame every --interval until interrupted or until the
reader closes the pipe. Logs go to stderr.

Operational screens redirect to setup while the readiness check fails; the
frame then carries meta.redirectedFrom.`,
		Example: `  xytectl headless --screen devices
  xytectl headless --screen incidents --follow --interval 10s | jq .status
  xytectl headless --screen devices --filter lobby --select 1 --format text`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeadless(cmd, f)
		},
	}

	c.Flags().StringVar(&f.screen, "screen", string(screen.Dashboard), "Screen to render")
	c.Flags().BoolVar(&f.follow, "follow", false, "Keep emitting frames every interval")
	c.Flags().DurationVar(&f.interval, "interval", 0, "Interval between frames in follow mode (default from config, 5s)")
	c.Flags().BoolVar(&f.checkConnectivity, "check-connectivity", false, "Probe the API before serving operational screens")
	c.Flags().StringVar(&f.format, "format", "json", "Output format: json or text")
	c.Flags().StringVar(&f.filter, "filter", "", "Filter list screens by text")
	c.Flags().IntVar(&f.selected, "select", 0, "Show the detail of the n-th listed row (1-based)")
	return c
}

func runHeadless(cmd *cobra.Command, f headlessFlags) error {
	id, err := screen.Parse(f.screen)
	if err != nil {
		return err
	}

	cfg := newAppConfig(cmd, app.ModeHeadless)
	cfg.Headless = app.HeadlessOptions{
		Screen:            id,
		Follow:            f.follow,
		Interval:          f.interval,
		CheckConnectivity: f.checkConnectivity,
		Format:            f.format,
		Filter:            f.filter,
		Selected:          f.selected,
	}
	return runApplication(cmd, cfg)
}
