package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all application configuration.
type Config struct {
	// File locations
	Paths PathsConfig `json:"paths" mapstructure:"paths"`

	// Record layout and self validation
	Format FormatConfig `json:"format" mapstructure:"format"`

	// Logging
	Log LogConfig `json:"log" mapstructure:"log"`
}

// PathsConfig names the files the formatter and comparator work on.
type PathsConfig struct {
	Input     string `json:"input" mapstructure:"input"`         // raw copy-pasted vectors
	Output    string `json:"output" mapstructure:"output"`       // normalized records
	Reference string `json:"reference" mapstructure:"reference"` // hand-edited ground truth
}

// FormatConfig controls record grouping.
type FormatConfig struct {
	EntriesPerRecord int  `json:"entries_per_record" mapstructure:"entries_per_record"`
	SelfCheck        bool `json:"self_check" mapstructure:"self_check"` // compare output to reference after formatting
	Echo             bool `json:"echo" mapstructure:"echo"`             // print each record as it is written
}

// LogConfig for logging behavior.
type LogConfig struct {
	Level      string `json:"level" mapstructure:"level"`             // debug, info, warn, error
	Format     string `json:"format" mapstructure:"format"`           // text, json
	File       string `json:"file" mapstructure:"file"`               // Log file path (empty = stderr)
	MaxSize    int    `json:"max_size" mapstructure:"max_size"`       // Max log file size in MB
	MaxBackups int    `json:"max_backups" mapstructure:"max_backups"` // Max number of old logs
	MaxAge     int    `json:"max_age" mapstructure:"max_age"`         // Max age in days
	Color      bool   `json:"color" mapstructure:"color"`             // Enable colored output
}

// DefaultConfig returns the fixed file names the vector scripts always used.
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			Input:     "all_test_vectors.txt",
			Output:    "formatted_text_vectors.txt",
			Reference: "similarity_check.txt",
		},
		Format: FormatConfig{
			EntriesPerRecord: 4,
			SelfCheck:        true,
			Echo:             true,
		},
		Log: LogConfig{
			Level:      "warn",
			Format:     "text",
			File:       "",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     7,
			Color:      true,
		},
	}
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	if c.Paths.Input == "" {
		return errors.New("paths.input is required")
	}

	if c.Paths.Output == "" {
		return errors.New("paths.output is required")
	}

	if c.Format.SelfCheck && c.Paths.Reference == "" {
		return errors.New("paths.reference is required when format.self_check is set")
	}

	if c.Format.EntriesPerRecord <= 0 {
		return errors.New("format.entries_per_record must be positive")
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[c.Log.Format] {
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}

	return nil
}

// EnsureDirectories creates the log file directory. The output directory is
// left alone: a missing one is reported as a file access error.
func (c *Config) EnsureDirectories() error {
	if c.Log.File == "" {
		return nil
	}

	dir := filepath.Dir(c.Log.File)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	return nil
}
