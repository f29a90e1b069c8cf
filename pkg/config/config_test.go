package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shortdoom/audit-compare/pkg/models"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
	if cfg.Compare.ContextLines != 3 {
		t.Errorf("ContextLines = %d, want 3", cfg.Compare.ContextLines)
	}
	if cfg.Compare.Fuzzy {
		t.Error("fuzzy pairing should be off by default")
	}
	if cfg.Fetch.DataDir != "data" {
		t.Errorf("DataDir = %q, want data", cfg.Fetch.DataDir)
	}
	if cfg.Output.Format != FormatHuman {
		t.Errorf("Format = %q, want human", cfg.Output.Format)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"negative buffer", func(c *Config) { c.Compare.BufferSize = -1 }, "compare.buffer_size"},
		{"negative bandwidth", func(c *Config) { c.Compare.BandwidthLimit = -5 }, "compare.bandwidth_limit"},
		{"negative depth", func(c *Config) { c.Fetch.Depth = -1 }, "fetch.depth"},
		{"empty data dir", func(c *Config) { c.Fetch.DataDir = "" }, "fetch.data_dir"},
		{"bad output format", func(c *Config) { c.Output.Format = "xml" }, "output.format"},
		{"bad log format", func(c *Config) { c.Logging.Format = "binary" }, "logging.format"},
		{"enabled logging without file", func(c *Config) { c.Logging.Enabled = true }, "logging.file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			var verr *models.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want *models.ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `compare:
  fuzzy: true
  context_lines: 5
  exclude:
    - "*.lock"
    - vendor/
fetch:
  data_dir: /tmp/clones
  depth: 1
output:
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if !cfg.Compare.Fuzzy {
		t.Error("Fuzzy should be true")
	}
	if cfg.Compare.ContextLines != 5 {
		t.Errorf("ContextLines = %d, want 5", cfg.Compare.ContextLines)
	}
	if len(cfg.Compare.Exclude) != 2 {
		t.Errorf("Exclude = %v, want 2 patterns", cfg.Compare.Exclude)
	}
	if cfg.Fetch.DataDir != "/tmp/clones" || cfg.Fetch.Depth != 1 {
		t.Errorf("Fetch = %+v", cfg.Fetch)
	}
	if cfg.Output.Format != FormatJSON {
		t.Errorf("Format = %q, want json", cfg.Output.Format)
	}
	// Untouched values keep their defaults
	if cfg.Compare.BufferSize == 0 {
		t.Error("BufferSize should keep its default")
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("LoadFromFile() should fail for a missing file")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		os.WriteFile(path, []byte("compare: ["), 0o644)
		if _, err := LoadFromFile(path); err == nil {
			t.Error("LoadFromFile() should fail for invalid YAML")
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		os.WriteFile(path, []byte("fetch:\n  depth: -2\n"), 0o644)
		if _, err := LoadFromFile(path); err == nil {
			t.Error("LoadFromFile() should fail validation")
		}
	})
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Compare.Fuzzy = true
	cfg.Compare.Exclude = []string{"*.sum"}

	if err := SaveToFile(cfg, path); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if !loaded.Compare.Fuzzy || len(loaded.Compare.Exclude) != 1 {
		t.Errorf("round trip lost values: %+v", loaded.Compare)
	}
}
