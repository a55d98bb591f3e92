package config

import (
	"os"
	"path/filepath"
)

// configRoot is $XDG_CONFIG_HOME/raze (or the platform equivalent).
func configRoot() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "raze"), nil
}

// systemConfigPath must be called with mu held.
func systemConfigPath() (string, error) {
	if pathOverride != "" {
		return pathOverride, nil
	}
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, systemConfigName), nil
}

// DataPath resolves name inside the raze state directory, used for default
// log and journal locations. It falls back to the temp dir.
func DataPath(name string) string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "raze", name)
	}
	return filepath.Join(os.TempDir(), "raze", name)
}
