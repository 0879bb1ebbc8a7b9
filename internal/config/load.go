package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/todoforge/internal/appdir"
)

// Load loads settings from multiple sources in priority order:
// 1. Defaults
// 2. User settings file (todoforge.toml in the config directory)
// 3. Project settings file (.todoforge.toml in the current directory)
// 4. Environment variables
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{Sources: make(map[string]ConfigSource)}

	// 1. Set defaults
	setDefaults(cfg)

	// 2. User settings file
	if path := findUserSettingsFile(cfg.ConfigDir); path != "" {
		if err := loadSettingsFile(cfg, path, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user settings file %s: %w", path, err)
		}
	}

	// 3. Project settings file (overrides user settings)
	if path := findProjectSettingsFile(); path != "" {
		if err := loadSettingsFile(cfg, path, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project settings file %s: %w", path, err)
		}
	}

	// 4. Override from environment
	loadFromEnv(cfg)

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cfg, nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.ConfigDir = findConfigDir()
	cfg.DataDir = ""
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.ShortIDLength = DefaultShortIDLength
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]ConfigSource)
	}
	for _, name := range settingNames() {
		cfg.Sources[name] = SourceDefault
	}
	if os.Getenv("TODOFORGE_CONFIG_DIR") != "" {
		cfg.Sources["config_dir"] = SourceEnv
	}
}

// loadSettingsFile decodes a TOML settings file over cfg.
// Keys that do not map to a setting are rejected.
func loadSettingsFile(cfg *Config, path string, source ConfigSource) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return fmt.Errorf("unknown settings: %s", strings.Join(keys, ", "))
	}
	for _, name := range settingNames() {
		if meta.IsDefined(name) {
			cfg.Sources[name] = source
		}
	}
	cfg.Files = append(cfg.Files, path)
	return nil
}

// finalizeConfig computes derived values and validates settings.
func finalizeConfig(cfg *Config) error {
	cfg.ConfigDir = expandPath(cfg.ConfigDir)
	if cfg.ConfigDir == "" {
		return fmt.Errorf("config directory is empty")
	}
	if abs, err := filepath.Abs(cfg.ConfigDir); err == nil {
		cfg.ConfigDir = abs
	}

	if cfg.DataDir == "" {
		cfg.DataDir = appdir.DataPath(cfg.ConfigDir)
	}
	cfg.DataDir = expandPath(cfg.DataDir)
	if !filepath.IsAbs(cfg.DataDir) {
		cfg.DataDir = filepath.Join(cfg.ConfigDir, cfg.DataDir)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	if cfg.ShortIDLength <= 0 {
		return fmt.Errorf("short_id_length must be positive, got %d", cfg.ShortIDLength)
	}

	return nil
}
