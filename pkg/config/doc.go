// Package config handles configuration management for typedisk.
// It loads, in order of increasing precedence, the embedded defaults, the
// user's TOML file, TYPEDISK_ environment variables and explicit overrides
// (typically command-line flags), and decodes the result into Config.
package config
