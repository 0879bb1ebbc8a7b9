package config

import (
	"github.com/nibzard/todoforge/internal/appdir"
)

// ConfigSource represents where a setting value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// Default values.
const (
	DefaultLogLevel      = "warn"
	DefaultLogFormat     = "text"
	DefaultShortIDLength = 7
)

// Config holds the application settings.
type Config struct {
	// Paths
	ConfigDir string `toml:"-"`
	DataDir   string `toml:"data_dir"`

	// Logging
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`

	// Display
	ShortIDLength int `toml:"short_id_length"`

	// Files that contributed to this config, in load order.
	Files []string `toml:"-"`

	// Sources maps setting names to the layer that last set them.
	Sources map[string]ConfigSource `toml:"-"`
}

// ConfigPath returns the path of the global config document.
func (c *Config) ConfigPath() string {
	return appdir.ConfigPath(c.ConfigDir)
}

// TodoPath returns the path of the todo file backing space.
func (c *Config) TodoPath(space string) string {
	return appdir.TodoPath(c.DataDir, space)
}

// Source returns the layer that set the named setting.
func (c *Config) Source(name string) ConfigSource {
	if src, ok := c.Sources[name]; ok {
		return src
	}
	return SourceDefault
}

// settingNames returns the configurable setting names for source tracking.
func settingNames() []string {
	return []string{
		"config_dir",
		"data_dir",
		"log_level",
		"log_format",
		"log_timestamps",
		"short_id_length",
	}
}
