// Package config provides hierarchical configuration management for docpulse
// using koanf. Configuration is loaded with priority: environment variables >
// project config (.docpulse/config.yml) > user config (~/.config/docpulse/config.yml)
// > defaults. Legacy JSON project configs are still readable.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envGroups are config sections whose env vars map to nested keys.
// Example: DOCPULSE_SERVE_ADDR -> serve.addr
var envGroups = []string{"serve", "github"}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults.
//
// Config paths:
//   - User config: ~/.config/docpulse/config.yml (XDG compliant)
//   - Project config: .docpulse/config.yml (legacy .docpulse/config.json supported)
//
// projectConfigPath overrides the project config location when non-empty.
func Load(projectConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if err := loadUserConfig(k); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, projectConfigPath); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider("DOCPULSE_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	return finalizeConfig(k)
}

// loadDefaults applies default configuration values.
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level YAML config if present.
func loadUserConfig(k *koanf.Koanf) error {
	path, err := UserConfigPath()
	if err != nil {
		return nil
	}
	if !fileExists(path) {
		return nil
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load user config %s: %w", path, err)
	}
	return nil
}

// loadProjectConfig loads the project-level config. YAML is preferred;
// a legacy JSON config is used as fallback when no YAML exists.
func loadProjectConfig(k *koanf.Koanf, customPath string) error {
	yamlPath := ProjectConfigPath()
	if customPath != "" {
		yamlPath = customPath
	}

	if fileExists(yamlPath) {
		parser := yaml.Parser()
		if strings.HasSuffix(yamlPath, ".json") {
			parser = nil
		}
		if parser != nil {
			if err := k.Load(file.Provider(yamlPath), parser); err != nil {
				return fmt.Errorf("failed to load project config %s: %w", yamlPath, err)
			}
			return nil
		}
		if err := k.Load(file.Provider(yamlPath), json.Parser()); err != nil {
			return fmt.Errorf("failed to load project config %s: %w", yamlPath, err)
		}
		return nil
	}

	legacyPath := LegacyProjectConfigPath()
	if customPath == "" && fileExists(legacyPath) {
		if err := k.Load(file.Provider(legacyPath), json.Parser()); err != nil {
			return fmt.Errorf("failed to load legacy project config %s: %w", legacyPath, err)
		}
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations.
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Plain env aliases take effect before validation so a bare
	// GEMINI_API_KEY / GITHUB_TOKEN is a complete setup.
	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.GitHub.Token == "" {
		cfg.GitHub.Token = os.Getenv("GITHUB_TOKEN")
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.DocsDir = expandHomePath(cfg.DocsDir)
	cfg.PagesDir = expandHomePath(cfg.PagesDir)
	cfg.StateDir = expandHomePath(cfg.StateDir)

	return &cfg, nil
}

// envTransform converts environment variable names to config keys.
// Flat keys: DOCPULSE_MAX_RETRIES -> max_retries.
// Grouped keys: DOCPULSE_SERVE_ADDR -> serve.addr, DOCPULSE_GITHUB_TOKEN -> github.token.
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "DOCPULSE_"))
	for _, group := range envGroups {
		if strings.HasPrefix(key, group+"_") {
			return group + "." + strings.TrimPrefix(key, group+"_")
		}
	}
	return key
}

// expandHomePath expands ~ to the user's home directory.
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}

// fileExists returns true if the file exists and is readable.
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
