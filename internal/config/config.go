// Package config loads the optional pgr configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"pgr/internal/keys"
)

const fileName = "config.yaml"

// Config is the on-disk configuration. Every field is optional.
type Config struct {
	// Bindings are added after the built-in ones, in order.
	Bindings []Binding `yaml:"bindings"`
	// ActivityLog is the JSONL activity log path; empty disables logging.
	ActivityLog string `yaml:"activity_log"`

	// Path is the file the config was read from, empty if none.
	Path string `yaml:"-"`
}

// Binding binds one key name to an action name.
type Binding struct {
	Key    string `yaml:"key"`
	Action string `yaml:"action"`
}

// DefaultPath returns where the config file lives when no path is given.
// Order: PGR_CONFIG env var -> $XDG_CONFIG_HOME/pgr -> ~/.config/pgr.
// explicit is true when the path came from PGR_CONFIG.
func DefaultPath() (path string, explicit bool, err error) {
	if p := os.Getenv("PGR_CONFIG"); p != "" {
		return p, true, nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pgr", fileName), false, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false, fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "pgr", fileName), false, nil
}

// Load reads the config named by path, or the default location when path
// is empty. A missing file is only an error when it was asked for
// explicitly. All failures are *keys.ConfigError.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		path, explicit, err = DefaultPath()
		if err != nil {
			return nil, &keys.ConfigError{Reason: err.Error()}
		}
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		return nil, err
	}
	if cfg.Path == "" && explicit {
		return nil, &keys.ConfigError{Reason: fmt.Sprintf("config file %s does not exist", path)}
	}
	return cfg, nil
}

// LoadFrom reads the config at path. If the file does not exist, it
// returns an empty Config with no error.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, &keys.ConfigError{Reason: fmt.Sprintf("read %s: %v", path, err)}
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, &keys.ConfigError{Reason: fmt.Sprintf("%s: %v", path, err)}
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes YAML config data. Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	for i, b := range c.Bindings {
		if b.Key == "" {
			return fmt.Errorf("bindings[%d]: key is required", i)
		}
		if b.Action == "" {
			return fmt.Errorf("bindings[%d] (%s): action is required", i, b.Key)
		}
	}
	return nil
}

// ActivityLogPath picks the activity log path: the flag value wins, then
// PGR_ACTIVITY_LOG, then the config file.
func (c *Config) ActivityLogPath(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv("PGR_ACTIVITY_LOG"); env != "" {
		return env
	}
	return c.ActivityLog
}
