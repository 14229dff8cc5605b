package config

import "time"

const (
	DefaultBaseURL   = "https://hub.xyte.io/core/v1"
	DefaultEnvPrefix = "XYTE"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: 10 * time.Second,
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			BaseDelay:   250 * time.Millisecond,
			MaxDelay:    5000 * time.Millisecond,
			JitterRatio: 0.2,
		},
		Render: RenderConfig{
			MaxDepth:       6,
			MaxArrayItems:  50,
			MaxOutputChars: 12000,
			TableWidth:     24,
		},
		Headless: HeadlessConfig{
			FollowInterval: 5 * time.Second,
		},
		Secrets: SecretsConfig{
			EnvPrefix: DefaultEnvPrefix,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
