package config

import "os"

// Default values for configuration.
const (
	DefaultSampleSize = 100
	DefaultMaxSkipped = 1000
)

// Environment variable names.
const (
	EnvPlatform = "CHATSIFT_PLATFORM"
	EnvOutput   = "CHATSIFT_OUTPUT"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SampleSize: DefaultSampleSize,
		MaxSkipped: DefaultMaxSkipped,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to
// the config.
func (c *Config) applyEnvironmentOverrides() {
	if platform := os.Getenv(EnvPlatform); platform != "" {
		c.Platform = platform
	}
	if format := os.Getenv(EnvOutput); format != "" {
		c.Output = format
	}
}
