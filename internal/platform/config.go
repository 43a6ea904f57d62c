package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk CLI configuration. Environment variables override
// the file; flags override both (handled by the CLI itself).
type Config struct {
	// Server is the base URL of the note service.
	Server string `yaml:"server"`
	// Log is the minimum log level: debug, info, warn or error.
	Log string `yaml:"log"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Server: "http://localhost:8081",
		Log:    "info",
	}
}

// DefaultConfigPath locates the user config file. It does not check for
// existence.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "quill", "config.yaml")
}

// LoadConfig reads the YAML file at path (if it exists) and applies
// QUILL_SERVER and QUILL_LOG overrides. A missing file is not an error;
// a malformed one is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults apply.
		case err != nil:
			return cfg, fmt.Errorf("platform: failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("platform: failed to parse config %s: %w", path, err)
			}
		}
	}

	if server := os.Getenv("QUILL_SERVER"); server != "" {
		cfg.Server = server
	}
	if level := os.Getenv("QUILL_LOG"); level != "" {
		cfg.Log = level
	}

	return cfg, nil
}
