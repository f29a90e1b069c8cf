// Package config defines the runtime configuration for comparison
// runs and its YAML persistence.
package config

import (
	"fmt"

	"github.com/shortdoom/audit-compare/pkg/logging"
	"github.com/shortdoom/audit-compare/pkg/models"
	"github.com/shortdoom/audit-compare/pkg/reconcile"
)

// OutputFormat selects how run results are rendered
type OutputFormat string

const (
	// FormatHuman prints the terminal summary
	FormatHuman OutputFormat = "human"
	// FormatJSON prints the full report as JSON
	FormatJSON OutputFormat = "json"
)

// Config is the full runtime configuration
type Config struct {
	Compare CompareConfig `yaml:"compare"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// CompareConfig controls reconciliation and diff rendering
type CompareConfig struct {
	// Fuzzy enables same-basename pairing of one-sided files
	Fuzzy bool `yaml:"fuzzy"`

	// ContextLines is the unchanged-line window around changes;
	// negative disables collapsing
	ContextLines int `yaml:"context_lines"`

	// BufferSize is the read chunk size for byte comparison
	BufferSize int `yaml:"buffer_size"`

	// BandwidthLimit caps comparison reads in bytes per second;
	// 0 means unlimited
	BandwidthLimit int64 `yaml:"bandwidth_limit"`

	// Exclude lists path patterns skipped on both sides
	Exclude []string `yaml:"exclude"`
}

// FetchConfig controls how repository locators are materialized
type FetchConfig struct {
	// DataDir is where remote repositories are cloned
	DataDir string `yaml:"data_dir"`

	// Depth limits clone history; 0 clones everything
	Depth int `yaml:"depth"`
}

// OutputConfig controls rendering destinations
type OutputConfig struct {
	// Format is the terminal output format
	Format OutputFormat `yaml:"format"`

	// Progress shows a progress bar while diffing pairs
	Progress bool `yaml:"progress"`

	// Quiet suppresses the per-section listings
	Quiet bool `yaml:"quiet"`
}

// LoggingConfig controls the run log
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	File    string `yaml:"file"`
	Format  string `yaml:"format"`
	Level   string `yaml:"level"`
}

// Default returns the configuration used when no file or flags
// override it.
func Default() *Config {
	return &Config{
		Compare: CompareConfig{
			ContextLines: 3,
			BufferSize:   reconcile.DefaultBufferSize,
		},
		Fetch: FetchConfig{
			DataDir: "data",
		},
		Output: OutputConfig{
			Format:   FormatHuman,
			Progress: true,
		},
		Logging: LoggingConfig{
			Format: string(logging.FormatText),
			Level:  "info",
		},
	}
}

// Validate checks the configuration for values that cannot work
func (c *Config) Validate() error {
	if c.Compare.BufferSize < 0 {
		return &models.ValidationError{
			Field:   "compare.buffer_size",
			Message: fmt.Sprintf("must not be negative, got %d", c.Compare.BufferSize),
		}
	}
	if c.Compare.BandwidthLimit < 0 {
		return &models.ValidationError{
			Field:   "compare.bandwidth_limit",
			Message: fmt.Sprintf("must not be negative, got %d", c.Compare.BandwidthLimit),
		}
	}
	if c.Fetch.Depth < 0 {
		return &models.ValidationError{
			Field:   "fetch.depth",
			Message: fmt.Sprintf("must not be negative, got %d", c.Fetch.Depth),
		}
	}
	if c.Fetch.DataDir == "" {
		return &models.ValidationError{
			Field:   "fetch.data_dir",
			Message: "must not be empty",
		}
	}

	switch c.Output.Format {
	case FormatHuman, FormatJSON:
	default:
		return &models.ValidationError{
			Field:   "output.format",
			Message: fmt.Sprintf("unknown format %q", c.Output.Format),
		}
	}

	switch c.Logging.Format {
	case "", string(logging.FormatText), string(logging.FormatJSON):
	default:
		return &models.ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("unknown format %q", c.Logging.Format),
		}
	}

	if c.Logging.Enabled && c.Logging.File == "" {
		return &models.ValidationError{
			Field:   "logging.file",
			Message: "must be set when logging is enabled",
		}
	}

	return nil
}
