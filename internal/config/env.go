package config

import (
	"fmt"
	"os"
	"strings"
)

// loadFromEnv overrides settings from environment variables.
// TODOFORGE_CONFIG_DIR is read by findConfigDir during defaults.
func loadFromEnv(cfg *Config) {
	setEnv := func(field string) {
		cfg.Sources[field] = SourceEnv
	}

	if v := os.Getenv("TODOFORGE_DATA_DIR"); v != "" {
		cfg.DataDir = v
		setEnv("data_dir")
	}
	if v := os.Getenv("TODOFORGE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		setEnv("log_level")
	}
	if v := os.Getenv("TODOFORGE_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		setEnv("log_format")
	}
	if v := os.Getenv("TODOFORGE_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		setEnv("log_timestamps")
	}
	if v := os.Getenv("TODOFORGE_SHORT_ID"); v != "" {
		var i int
		if _, err := fmt.Sscanf(v, "%d", &i); err == nil {
			cfg.ShortIDLength = i
			setEnv("short_id_length")
		}
	}
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
