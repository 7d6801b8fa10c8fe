package config

import (
	"os"
	"path/filepath"
)

const (
	AppName        = "gatekeep"
	ConfigFileName = "config.yaml"
)

// ConfigDir returns the platform-appropriate config directory for gatekeep.
//   - Linux: ~/.config/gatekeep
//   - macOS: ~/Library/Application Support/gatekeep
//   - Windows: %AppData%/gatekeep
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, AppName), nil
}

// ConfigPath returns the full path to the XDG config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, ConfigFileName), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	return os.MkdirAll(dir, 0o755)
}

// ConfigExists checks if a config file exists at the platform config path.
func ConfigExists() (bool, string, error) {
	path, err := ConfigPath()
	if err != nil {
		return false, "", err
	}

	if _, err := os.Stat(path); err == nil {
		return true, path, nil
	}

	return false, "", nil
}
