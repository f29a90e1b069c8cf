// Package fetch materializes comparison inputs as local directory
// trees, cloning remote repositories when the locator is not already
// a directory on disk.
package fetch

import (
	"context"
	"errors"
	"strings"

	"github.com/shortdoom/audit-compare/pkg/logging"
)

// ErrTreeUnavailable marks a locator that could not be materialized.
// A comparison cannot proceed past it.
var ErrTreeUnavailable = errors.New("tree unavailable")

// Provider materializes one locator into a readable directory tree
// and returns its root path.
type Provider interface {
	Fetch(ctx context.Context, locator string) (string, error)
}

// Options configures fetching
type Options struct {
	// DataDir is where cloned repositories land
	DataDir string

	// Depth limits clone history; 0 clones the full history
	Depth int
}

// NewProvider picks the provider for a locator: remote git URLs get
// cloned, anything else is treated as a local directory.
func NewProvider(locator string, opts Options, logger logging.Logger) Provider {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	if IsRemote(locator) {
		return &GitProvider{dataDir: opts.DataDir, depth: opts.Depth, logger: logger}
	}
	return &LocalProvider{logger: logger}
}

// IsRemote reports whether a locator names a remote repository rather
// than a local directory.
func IsRemote(locator string) bool {
	return strings.Contains(locator, "://") ||
		strings.HasPrefix(locator, "git@") ||
		strings.HasSuffix(locator, ".git")
}
