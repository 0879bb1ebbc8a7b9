// Package appdir provides constants and utilities for the todoforge directory layout.
package appdir

import (
	"path/filepath"
	"strings"
)

const (
	// Name is the directory name used under the user config directory.
	Name = "todoforge"

	// HiddenDir is the legacy home-level directory (~/.todoforge).
	HiddenDir = ".todoforge"

	// ConfigFile is the global space registry (inside the config dir).
	ConfigFile = "config.json"

	// SettingsFile is the TOML settings file (inside the config dir).
	SettingsFile = "todoforge.toml"

	// ProjectSettingsFile is the project-level TOML settings file.
	ProjectSettingsFile = ".todoforge.toml"

	// SpacesDir is the default todo data directory name (inside the config dir).
	SpacesDir = "spaces"

	// TodoFileSuffix is appended to a space name to build its file name.
	TodoFileSuffix = "_todo.json"
)

// ConfigPath returns the full path to the global config document.
func ConfigPath(configDir string) string {
	return joinPath(configDir, ConfigFile)
}

// SettingsPath returns the full path to the settings file.
func SettingsPath(configDir string) string {
	return joinPath(configDir, SettingsFile)
}

// DataPath returns the default todo data directory within a config dir.
func DataPath(configDir string) string {
	return joinPath(configDir, SpacesDir)
}

// TodoFileName returns the file name backing a space.
func TodoFileName(space string) string {
	return space + TodoFileSuffix
}

// TodoPath returns the full path to the todo file of a space.
func TodoPath(dataDir, space string) string {
	return joinPath(dataDir, TodoFileName(space))
}

// SpaceFromFileName returns the space name encoded in a todo file name.
// ok is false when name is not a todo file.
func SpaceFromFileName(name string) (string, bool) {
	if !strings.HasSuffix(name, TodoFileSuffix) {
		return "", false
	}
	space := strings.TrimSuffix(name, TodoFileSuffix)
	return space, space != ""
}

func joinPath(dir, file string) string {
	if dir == "." || dir == "" {
		return file
	}
	return filepath.Join(dir, file)
}
