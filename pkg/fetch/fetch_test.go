package fetch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestIsRemote(t *testing.T) {
	tests := []struct {
		locator string
		want    bool
	}{
		{"https://github.com/org/project.git", true},
		{"https://github.com/org/project", true},
		{"git@github.com:org/project.git", true},
		{"ssh://git@host/org/project", true},
		{"local/checkout.git", true},
		{"/var/data/project", false},
		{"./relative/tree", false},
		{"project", false},
	}

	for _, tt := range tests {
		t.Run(tt.locator, func(t *testing.T) {
			if got := IsRemote(tt.locator); got != tt.want {
				t.Errorf("IsRemote(%q) = %v, want %v", tt.locator, got, tt.want)
			}
		})
	}
}

func TestNewProviderSelection(t *testing.T) {
	if _, ok := NewProvider("https://github.com/org/p.git", Options{}, nil).(*GitProvider); !ok {
		t.Error("remote locator should select GitProvider")
	}
	if _, ok := NewProvider("/tmp/tree", Options{}, nil).(*LocalProvider); !ok {
		t.Error("path locator should select LocalProvider")
	}
}

func TestLocalProviderFetch(t *testing.T) {
	t.Run("existing directory", func(t *testing.T) {
		dir := t.TempDir()
		got, err := NewProvider(dir, Options{}, nil).Fetch(context.Background(), dir)
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if got != dir {
			t.Errorf("Fetch() = %q, want %q", got, dir)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "nope")
		_, err := NewProvider(missing, Options{}, nil).Fetch(context.Background(), missing)
		if !errors.Is(err, ErrTreeUnavailable) {
			t.Errorf("Fetch() error = %v, want ErrTreeUnavailable", err)
		}
	})

	t.Run("file instead of directory", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "f.txt")
		if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := NewProvider(file, Options{}, nil).Fetch(context.Background(), file)
		if !errors.Is(err, ErrTreeUnavailable) {
			t.Errorf("Fetch() error = %v, want ErrTreeUnavailable", err)
		}
	})
}
