package app

import (
	"fmt"
	"time"

	"xytectl/internal/api"
	"xytectl/internal/config"
	"xytectl/internal/domain"
	"xytectl/internal/headless"
	"xytectl/internal/profile"
	"xytectl/internal/readiness"
	"xytectl/internal/retry"
	"xytectl/internal/safeview"
	"xytectl/internal/scene"
	"xytectl/pkg/logging"
)

// Services holds everything the modes share.
type Services struct {
	Logger   *logging.Logger
	Profiles *profile.FileStore
	Secrets  *profile.EnvSecretStore
	Gate     *readiness.Gate
	Retry    retry.Runner
	Scene    scene.Options
	Summary  headless.ConfigSummary
	Fetcher  *headless.Fetcher
}

// InitializeServices wires profiles, secrets, the readiness gate, and the
// loaders from the loaded configuration.
func InitializeServices(cfg *Config, logger *logging.Logger) (*Services, error) {
	x := cfg.Xyte
	if x == nil {
		d := config.Default()
		x = &d
	}

	store, err := profile.LoadFileStore(x.Profiles.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	if cfg.Tenant != "" {
		store = store.WithActiveTenant(cfg.Tenant)
		logger.Info(bootstrapSubsystem, "Active tenant overridden to %q", cfg.Tenant)
	}
	secrets := profile.NewEnvSecretStore(x.Secrets.EnvPrefix)

	newClient := func(c readiness.Credential) api.Client {
		return api.NewHTTPClient(x.API.BaseURL, c.Secret, x.API.Timeout)
	}
	gate := &readiness.Gate{
		Profiles:  store,
		Secrets:   secrets,
		NewClient: newClient,
		Logger:    logger,
	}

	runner := retry.Runner{Policy: retry.Policy{
		MaxAttempts: x.Retry.MaxAttempts,
		BaseDelayMs: int(x.Retry.BaseDelay / time.Millisecond),
		MaxDelayMs:  int(x.Retry.MaxDelay / time.Millisecond),
		JitterRatio: jitterRatio(x.Retry.JitterRatio),
	}}
	sceneOpts := scene.Options{
		CellWidth: x.Render.TableWidth,
		Render: safeview.Options{
			MaxDepth:       x.Render.MaxDepth,
			MaxArrayItems:  x.Render.MaxArrayItems,
			MaxOutputChars: x.Render.MaxOutputChars,
		},
	}
	summary := headless.ConfigSummary{
		BaseURL:      x.API.BaseURL,
		ProfilesPath: x.Profiles.Path,
		Tenants:      store.TenantIDs(),
		Settings:     settings(*x),
	}

	return &Services{
		Logger:   logger,
		Profiles: store,
		Secrets:  secrets,
		Gate:     gate,
		Retry:    runner,
		Scene:    sceneOpts,
		Summary:  summary,
		Fetcher: &headless.Fetcher{
			Gate:   gate,
			Retry:  runner,
			Config: summary,
			Loader: func(c readiness.Credential) domain.Loader {
				return domain.Loader{Client: newClient(c)}
			},
			Logger: logger,
		},
	}, nil
}

// settings flattens the effective configuration for the config screen.
func settings(x config.Config) map[string]any {
	return map[string]any{
		"api.timeout":                x.API.Timeout.String(),
		"retry.maxAttempts":          x.Retry.MaxAttempts,
		"retry.baseDelay":            x.Retry.BaseDelay.String(),
		"retry.maxDelay":             x.Retry.MaxDelay.String(),
		"retry.jitterRatio":          x.Retry.JitterRatio,
		"render.maxDepth":            x.Render.MaxDepth,
		"render.maxArrayItems":       x.Render.MaxArrayItems,
		"render.maxOutputChars":      x.Render.MaxOutputChars,
		"render.tableWidth":          x.Render.TableWidth,
		"headless.followInterval":    x.Headless.FollowInterval.String(),
		"headless.checkConnectivity": x.Headless.CheckConnectivity,
		"secrets.envPrefix":          x.Secrets.EnvPrefix,
		"log.level":                  x.Log.Level,
	}
}

// jitterRatio keeps an explicit "jitterRatio: 0" meaning no jitter.
func jitterRatio(v float64) float64 {
	if v == 0 {
		return retry.NoJitter
	}
	return v
}
