package app

import (
	"io"
	"os"
	"time"

	"xytectl/internal/config"
	"xytectl/internal/screen"
)

// Mode selects how the application presents the screen runtime.
type Mode string

const (
	ModeTUI      Mode = "tui"
	ModeHeadless Mode = "headless"
	ModeMCP      Mode = "mcp"
)

// HeadlessOptions come from the headless command flags.
type HeadlessOptions struct {
	Screen screen.ID
	Follow bool
	// Interval overrides headless.followInterval when positive.
	Interval          time.Duration
	CheckConnectivity bool
	// Format is "json" (NDJSON frames) or "text".
	Format   string
	Filter   string
	Selected int
}

// Config holds the application configuration
type Config struct {
	Mode Mode

	// Debug settings
	Debug bool

	// ConfigPath replaces the layered config lookup with one file.
	ConfigPath string
	// Tenant overrides the active tenant of the profile document.
	Tenant string

	Version  string
	Start    screen.ID
	Headless HeadlessOptions

	In  io.Reader
	Out io.Writer

	// Xyte is the loaded configuration, filled by NewApplication.
	Xyte *config.Config
}

// NewConfig creates a new application configuration
func NewConfig(mode Mode, debug bool, configPath, tenant string) *Config {
	return &Config{
		Mode:       mode,
		Debug:      debug,
		ConfigPath: configPath,
		Tenant:     tenant,
		Start:      screen.Dashboard,
		Headless:   HeadlessOptions{Format: "json"},
		In:         os.Stdin,
		Out:        os.Stdout,
	}
}
