// Package config resolves per-user paths and reads the TOML config file.
package config

import (
	"os"
	"path/filepath"
)

// AppName namespaces every per-user file.
const AppName = "thok"

// XDGConfigHome returns $XDG_CONFIG_HOME, the platform config dir, or ~/.config.
func XDGConfigHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return dir
	}
	return underHome(".config")
}

// XDGDataHome returns $XDG_DATA_HOME or ~/.local/share.
func XDGDataHome() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	return underHome(".local", "share")
}

// underHome joins elems onto the home directory, falling back to the
// working directory when no home is known.
func underHome(elems ...string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(append([]string{home}, elems...)...)
}

func configFile(name string) string { return filepath.Join(XDGConfigHome(), AppName, name) }

// DefaultLogPath is the CSV results log.
func DefaultLogPath() string { return configFile("log.csv") }

// DefaultWordListDir holds user word lists named <lang>.txt.
func DefaultWordListDir() string { return configFile("wordlists") }

// DefaultConfigPath is the TOML config file.
func DefaultConfigPath() string { return configFile("config.toml") }

// DefaultDBPath is the SQLite results database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), AppName, AppName+".db")
}
