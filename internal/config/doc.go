// Package config provides configuration management for xytectl.
//
// Configuration is layered. Each layer is decoded on top of the previous one,
// so a file only needs to mention the keys it wants to change:
//
//  1. Default configuration (Default)
//  2. User configuration (~/.config/xytectl/config.yaml)
//  3. Project configuration (./.xytectl/config.yaml)
//
// LoadConfigFromPath skips the layered lookup and decodes a single file over
// the defaults. Command-line flags are applied by the caller afterwards.
//
// Example:
//
//	api:
//	  baseURL: https://hub.xyte.io/core/v1
//	  timeout: 10s
//	retry:
//	  maxAttempts: 3
//	  baseDelay: 250ms
//	render:
//	  maxDepth: 6
//	headless:
//	  followInterval: 5s
package config
