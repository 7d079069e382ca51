// Package config loads the tagmirror configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"tagmirror/internal/logging"
	"tagmirror/internal/tabular"
)

// Config holds all tagmirror configuration.
type Config struct {
	// Project is the path of the YAML project file.
	Project string `yaml:"project"`

	Sync    SyncConfig     `yaml:"sync"`
	Alarms  AlarmsConfig   `yaml:"alarms"`
	Tags    TagsConfig     `yaml:"tags"`
	Logging logging.Config `yaml:"logging"`
	Metrics MetricsConfig  `yaml:"metrics"`
}

// SyncConfig configures mirroring of the tag tree into the model.
type SyncConfig struct {
	// InputNode is the tag structure or folder to mirror.
	InputNode string `yaml:"input_node"`
	// SetDynamicLinks binds every mirrored variable to its source tag.
	SetDynamicLinks bool `yaml:"set_dynamic_links"`
	// ModelFolder receives the mirrored tree.
	ModelFolder string `yaml:"model_folder"`
}

// AlarmsConfig configures alarm generation.
type AlarmsConfig struct {
	StartingNode string `yaml:"starting_node"`
	AlarmsFolder string `yaml:"alarms_folder"`
}

// TagsConfig configures the tag table export and import.
type TagsConfig struct {
	StartingNode string `yaml:"starting_node"`
	File         string `yaml:"file"`
	Encoding     string `yaml:"encoding"` // utf-16le, utf-8
}

// MetricsConfig configures the run metrics textfile.
type MetricsConfig struct {
	// File receives the counters of each run. Empty disables the textfile.
	File string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Project: "project.yaml",

		Sync: SyncConfig{
			InputNode:       "CommDrivers",
			SetDynamicLinks: true,
			ModelFolder:     "Model",
		},

		Alarms: AlarmsConfig{
			StartingNode: "Model",
			AlarmsFolder: "Alarms",
		},

		Tags: TagsConfig{
			StartingNode: "CommDrivers",
			File:         "tags.csv",
			Encoding:     "utf-16le",
		},

		Logging: logging.Config{
			Level:  "info",
			Format: logging.FormatConsole,
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("TAGMIRROR_PROJECT"); path != "" {
		c.Project = path
	}

	if level := os.Getenv("TAGMIRROR_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}

	if path := os.Getenv("TAGMIRROR_TAGS_FILE"); path != "" {
		c.Tags.File = path
	}

	// unparsable values keep the configured setting
	if v := os.Getenv("TAGMIRROR_SET_DYNAMIC_LINKS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Sync.SetDynamicLinks = b
		}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs []error

	required := []struct {
		key, value string
	}{
		{"project", c.Project},
		{"sync.input_node", c.Sync.InputNode},
		{"sync.model_folder", c.Sync.ModelFolder},
		{"alarms.starting_node", c.Alarms.StartingNode},
		{"alarms.alarms_folder", c.Alarms.AlarmsFolder},
		{"tags.starting_node", c.Tags.StartingNode},
		{"tags.file", c.Tags.File},
	}

	for _, r := range required {
		if r.value == "" {
			errs = append(errs, fmt.Errorf("%s is required", r.key))
		}
	}

	if _, err := tabular.ParseEncoding(c.Tags.Encoding); err != nil {
		errs = append(errs, fmt.Errorf("tags.encoding: %w", err))
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}

	switch c.Logging.Format {
	case "", logging.FormatJSON, logging.FormatConsole:
	default:
		errs = append(errs, fmt.Errorf("logging.format: unknown format %q", c.Logging.Format))
	}

	return errors.Join(errs...)
}

// TagsEncoding returns the parsed table encoding. Invalid values fall back to UTF-16LE.
func (c *Config) TagsEncoding() tabular.Encoding {
	e, err := tabular.ParseEncoding(c.Tags.Encoding)
	if err != nil {
		return tabular.EncodingUTF16LE
	}

	return e
}
