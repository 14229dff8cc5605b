package config

import "time"

// Config is the top-level configuration structure for xytectl.
type Config struct {
	API      APIConfig      `yaml:"api"`
	Retry    RetryConfig    `yaml:"retry"`
	Render   RenderConfig   `yaml:"render"`
	Headless HeadlessConfig `yaml:"headless"`
	Profiles ProfilesConfig `yaml:"profiles"`
	Secrets  SecretsConfig  `yaml:"secrets"`
	Log      LogConfig      `yaml:"log"`
}

// APIConfig points the client at the fleet-management API.
type APIConfig struct {
	BaseURL string        `yaml:"baseURL,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// RetryConfig feeds retry.Policy.
type RetryConfig struct {
	MaxAttempts int           `yaml:"maxAttempts,omitempty"`
	BaseDelay   time.Duration `yaml:"baseDelay,omitempty"`
	MaxDelay    time.Duration `yaml:"maxDelay,omitempty"`
	JitterRatio float64       `yaml:"jitterRatio"`
}

// RenderConfig bounds what panels may echo from vendor payloads.
type RenderConfig struct {
	MaxDepth       int `yaml:"maxDepth,omitempty"`
	MaxArrayItems  int `yaml:"maxArrayItems,omitempty"`
	MaxOutputChars int `yaml:"maxOutputChars,omitempty"`
	TableWidth     int `yaml:"tableWidth,omitempty"` // widest table cell, in terminal columns
}

// HeadlessConfig controls the frame emitter loop.
type HeadlessConfig struct {
	FollowInterval    time.Duration `yaml:"followInterval,omitempty"`
	CheckConnectivity bool          `yaml:"checkConnectivity"`
}

// ProfilesConfig locates the tenant profile document.
type ProfilesConfig struct {
	Path string `yaml:"path,omitempty"` // defaults to ~/.config/xytectl/profiles.yaml
}

// SecretsConfig configures the environment-backed secret store.
type SecretsConfig struct {
	EnvPrefix string `yaml:"envPrefix,omitempty"`
}

// LogConfig selects level and handler format.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"` // text or json
}
