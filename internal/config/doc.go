// Package config handles settings loading and defaults.
//
// Settings are loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User settings file (todoforge.toml inside the config directory)
// 3. Project settings file (.todoforge.toml in the current directory)
// 4. Environment variables (TODOFORGE_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// Config directory locations (first match wins):
// - $TODOFORGE_CONFIG_DIR
// - ~/.todoforge (if it exists)
// - Windows: %APPDATA%\todoforge
// - macOS: ~/Library/Application Support/todoforge
// - Linux/BSD: $XDG_CONFIG_HOME/todoforge or ~/.config/todoforge
//
// The user settings file is looked up in the config directory resolved from
// the environment. The -config-dir flag relocates the state files only.
//
// Settings are distinct from the global config document (config.json),
// which records the known spaces and is owned by the store package.
package config
