package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "handy"

// ConfigDir returns the XDG-compliant config directory for handy
// Typically ~/.config/handy/ on Linux
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, appName)
}

// ConfigPath returns the full path to the config file
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json5")
}

// StateDir returns the XDG-compliant state directory for handy
// Typically ~/.local/state/handy/ on Linux
func StateDir() string {
	return filepath.Join(xdg.StateHome, appName)
}

// StatePath returns the full path to the persisted tool state
func StatePath() string {
	return filepath.Join(StateDir(), "state.toml")
}
