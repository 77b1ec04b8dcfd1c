package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrExists is returned when saving would replace an existing file.
var ErrExists = errors.New("config file already exists")

const fileHeader = "# meshpaint configuration\n# Values here are overridden by command-line flags.\n\n"

// Save writes the config to config.yaml in ConfigDir and returns the path
// written. An existing file is replaced only when force is set.
func (c *Config) Save(force bool) (string, error) {
	path := filepath.Join(ConfigDir(), "config.yaml")
	return path, c.SaveTo(path, force)
}

// SaveTo validates the config and writes it as YAML to path, creating
// parent directories. An existing file is replaced only when force is set.
func (c *Config) SaveTo(path string, force bool) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid config: %w", err)
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, append([]byte(fileHeader), data...), 0644)
}
