package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over the search locations
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would make hit tests or painting impossible.
func (c *Config) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", c.Viewport.Width, c.Viewport.Height)
	}
	if c.Texture.Width <= 0 || c.Texture.Height <= 0 {
		return fmt.Errorf("texture must be positive, got %dx%d", c.Texture.Width, c.Texture.Height)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera clip planes invalid: near=%v far=%v", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.FovDegrees <= 0 || c.Camera.FovDegrees >= 180 {
		return fmt.Errorf("camera fov must be between 0 and 180 degrees, got %v", c.Camera.FovDegrees)
	}
	if c.Camera.Distance <= 0 {
		return fmt.Errorf("camera distance must be positive, got %v", c.Camera.Distance)
	}
	if c.Camera.Scale <= 0 {
		return fmt.Errorf("model scale must be positive, got %v", c.Camera.Scale)
	}
	if c.Texture.ExportScale <= 0 {
		return fmt.Errorf("texture export scale must be positive, got %v", c.Texture.ExportScale)
	}
	switch c.Texture.ExportFilter {
	case "nearest", "linear":
	default:
		return fmt.Errorf("unknown export filter %q", c.Texture.ExportFilter)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./meshpaint.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "MeshPaint")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "MeshPaint")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "meshpaint")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "meshpaint")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
