package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/docpulse/config.yml
// - macOS: ~/Library/Application Support/docpulse/config.yml
// - Windows: %APPDATA%\docpulse\config.yml
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "docpulse", "config.yml"), nil
}

// UserConfigDir returns the path to the user-level config directory.
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "docpulse"), nil
}

// ProjectConfigPath returns the path to the project-level config file.
// This is always .docpulse/config.yml relative to the current directory.
func ProjectConfigPath() string {
	return filepath.Join(".docpulse", "config.yml")
}

// ProjectConfigDir returns the path to the project-level config directory.
func ProjectConfigDir() string {
	return ".docpulse"
}

// LegacyProjectConfigPath returns the path to the legacy project-level JSON
// config file (.docpulse/config.json), still readable for older setups.
func LegacyProjectConfigPath() string {
	return filepath.Join(".docpulse", "config.json")
}

// joinPage joins a path under the pages directory.
func joinPage(pagesDir string, elem ...string) string {
	return filepath.Join(append([]string{pagesDir}, elem...)...)
}
