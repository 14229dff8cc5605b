package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/xytectl"
	projectConfigDir = ".xytectl"
	configFileName   = "config.yaml"
	profilesFileName = "profiles.yaml"
)

// LoadConfig loads the configuration by layering default, user, and project settings.
func LoadConfig() (Config, error) {
	cfg := Default()

	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// user config is optional
		fmt.Fprintf(os.Stderr, "Warning: Could not determine user config path: %v\n", err)
	} else if err := overlayFile(&cfg, userConfigPath); err != nil {
		return Config{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
	}

	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not determine project config path: %v\n", err)
	} else if err := overlayFile(&cfg, projectConfigPath); err != nil {
		return Config{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
	}

	cfg.applyDerivedDefaults()
	return cfg, cfg.Validate()
}

// LoadConfigFromPath decodes a single file over the defaults. The file must exist.
func LoadConfigFromPath(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}
	if err := overlayFile(&cfg, path); err != nil {
		return Config{}, fmt.Errorf("error loading config from %s: %w", path, err)
	}
	cfg.applyDerivedDefaults()
	return cfg, cfg.Validate()
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// overlayFile decodes path on top of cfg. A missing file is not an error.
func overlayFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func (c *Config) applyDerivedDefaults() {
	if c.Profiles.Path == "" {
		if dir, err := GetUserConfigDir(); err == nil {
			c.Profiles.Path = filepath.Join(dir, profilesFileName)
		}
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("retry.maxAttempts must be >= 1, got %d", c.Retry.MaxAttempts))
	}
	if c.Retry.BaseDelay < 0 || c.Retry.MaxDelay < 0 {
		errs = append(errs, errors.New("retry delays must not be negative"))
	}
	if c.Retry.JitterRatio < 0 || c.Retry.JitterRatio > 1 {
		errs = append(errs, fmt.Errorf("retry.jitterRatio must be within [0,1], got %v", c.Retry.JitterRatio))
	}
	if c.Render.MaxDepth < 1 || c.Render.MaxArrayItems < 1 || c.Render.MaxOutputChars < 1 {
		errs = append(errs, errors.New("render limits must be positive"))
	}
	if c.Render.TableWidth < 1 {
		errs = append(errs, fmt.Errorf("render.tableWidth must be positive, got %d", c.Render.TableWidth))
	}
	if c.Headless.FollowInterval <= 0 {
		errs = append(errs, errors.New("headless.followInterval must be positive"))
	}
	return errors.Join(errs...)
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
