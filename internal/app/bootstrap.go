package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"xytectl/internal/config"
	"xytectl/pkg/logging"
)

const bootstrapSubsystem = "Bootstrap"

// Application is the main application structure that bootstraps and runs xytectl
type Application struct {
	config   *Config
	services *Services
}

// NewApplication loads configuration, builds the logger and the services,
// and returns an application ready to Run.
func NewApplication(cfg *Config) (*Application, error) {
	xyteCfg, err := loadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	cfg.Xyte = &xyteCfg

	logger := newLogger(cfg)
	if cfg.ConfigPath != "" {
		logger.Info(bootstrapSubsystem, "Loaded configuration from custom path: %s", cfg.ConfigPath)
	} else {
		logger.Debug(bootstrapSubsystem, "Loaded configuration using layered approach")
	}

	services, err := InitializeServices(cfg, logger)
	if err != nil {
		logger.Error(bootstrapSubsystem, err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		services: services,
	}, nil
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		cfg, err := config.LoadConfigFromPath(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load configuration from path %s: %w", path, err)
		}
		return cfg, nil
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// newLogger routes entries to the TUI channel in interactive mode and to
// stderr otherwise, keeping stdout free for frames and MCP traffic.
func newLogger(cfg *Config) *logging.Logger {
	level := logging.ParseLevel(cfg.Xyte.Log.Level)
	if cfg.Debug {
		level = logging.LevelDebug
	}
	return logging.New(logging.Options{
		Level:      level,
		Output:     os.Stderr,
		Format:     cfg.Xyte.Log.Format,
		TUIChannel: cfg.Mode == ModeTUI,
	})
}

// Run executes the application in the configured mode until ctx ends, the
// user quits, or an interrupt arrives.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	// Deferred calls run in reverse: cancel refreshes, then close the log channel.
	defer a.services.Logger.Close()
	defer stop()

	switch a.config.Mode {
	case ModeHeadless:
		return runHeadlessMode(ctx, a.config, a.services)
	case ModeMCP:
		return runMCPMode(ctx, a.config, a.services)
	case ModeTUI, "":
		return runTUIMode(ctx, a.config, a.services)
	}
	return fmt.Errorf("unknown mode %q", a.config.Mode)
}
