package cmd

import (
	"context"
	"fmt"
	"os"

	"xytectl/internal/app"

	"github.com/spf13/cobra"
)

var (
	// rootConfigPath replaces the layered config lookup with a single file.
	rootConfigPath string
	rootDebug      bool
	rootTenant     string
)

const versionTemplate = `{{printf "xytectl version %s\n" .Version}}`

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "xytectl",
	Short: "Operate a Xyte fleet from the terminal",
	Long: `xytectl shows the organization, spaces, devices, incidents and tickets of a
Xyte tenant. It runs as an interactive terminal UI, as a headless emitter of
line-delimited JSON frames for automation, or as an MCP server for agents.

Operational screens stay locked until a tenant profile with an API key is
configured; until then every request is redirected to the setup screen.`,
	Args: cobra.NoArgs,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. invalid arguments, failed connections)
	SilenceUsage: true,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(versionTemplate)

	if err := rootCmd.Execute(); err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

// newAppConfig seeds an app config from the persistent flags.
func newAppConfig(cmd *cobra.Command, mode app.Mode) *app.Config {
	cfg := app.NewConfig(mode, rootDebug, rootConfigPath, rootTenant)
	cfg.Version = rootCmd.Version
	cfg.In = cmd.InOrStdin()
	cfg.Out = cmd.OutOrStdout()
	return cfg
}

// runApplication bootstraps and runs cfg under the command's context.
func runApplication(cmd *cobra.Command, cfg *app.Config) error {
	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return application.Run(ctx)
}

func init() {
	// Running without a subcommand starts the TUI.
	rootCmd.RunE = runTUI

	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Config file (default is layered ~/.config/xytectl/config.yaml and .xytectl/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&rootDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&rootTenant, "tenant", "", "Tenant id to use instead of the profile's active tenant")

	rootCmd.AddCommand(newTUICmd())
	rootCmd.AddCommand(newHeadlessCmd())
	rootCmd.AddCommand(newMCPCmd())
	rootCmd.AddCommand(newScreensCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
