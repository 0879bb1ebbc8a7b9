package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/nibzard/todoforge/internal/appdir"
)

// findConfigDir resolves the config directory.
// TODOFORGE_CONFIG_DIR wins, then ~/.todoforge if it already exists,
// then the OS-specific user config directory.
func findConfigDir() string {
	if v := os.Getenv("TODOFORGE_CONFIG_DIR"); v != "" {
		return expandPath(v)
	}

	home, err := os.UserHomeDir()
	if err == nil {
		hidden := filepath.Join(home, appdir.HiddenDir)
		if info, err := os.Stat(hidden); err == nil && info.IsDir() {
			return hidden
		}
	}

	if cfgDir := osUserConfigDir(); cfgDir != "" {
		return filepath.Join(cfgDir, appdir.Name)
	}

	if err == nil {
		return filepath.Join(home, appdir.HiddenDir)
	}
	return appdir.HiddenDir
}

// findProjectSettingsFile looks for a settings file in the current directory.
func findProjectSettingsFile() string {
	if _, err := os.Stat(appdir.ProjectSettingsFile); err == nil {
		return appdir.ProjectSettingsFile
	}
	return ""
}

// findUserSettingsFile returns the settings file inside configDir if it exists.
func findUserSettingsFile(configDir string) string {
	path := appdir.SettingsPath(configDir)
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// osUserConfigDir returns the OS-specific user config directory.
// Returns empty string if the directory cannot be determined.
func osUserConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return appdata
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	case "linux", "openbsd", "freebsd", "netbsd":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, ".config")
		}
	}
	return ""
}

// expandPath expands home directory and environment variables in paths.
// It supports ~/ or ~\ prefixes and %VAR% expansion on Windows.
func expandPath(p string) string {
	if p == "" {
		return p
	}

	expanded := expandEnv(p)
	if expanded == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return home
	}
	if strings.HasPrefix(expanded, "~/") || (runtime.GOOS == "windows" && strings.HasPrefix(expanded, "~\\")) {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return filepath.Join(home, expanded[2:])
	}
	return expanded
}

func expandEnv(p string) string {
	expanded := os.ExpandEnv(p)
	if runtime.GOOS != "windows" {
		return expanded
	}
	return expandWindowsEnv(expanded)
}

func expandWindowsEnv(p string) string {
	if !strings.Contains(p, "%") {
		return p
	}
	var b strings.Builder
	for i := 0; i < len(p); {
		if p[i] == '%' {
			end := strings.IndexByte(p[i+1:], '%')
			if end >= 0 {
				key := p[i+1 : i+1+end]
				if key == "" {
					b.WriteByte('%')
					i++
					continue
				}
				if val, ok := os.LookupEnv(key); ok {
					b.WriteString(val)
				} else {
					b.WriteByte('%')
					b.WriteString(key)
					b.WriteByte('%')
				}
				i += end + 2
				continue
			}
		}
		b.WriteByte(p[i])
		i++
	}
	return b.String()
}
