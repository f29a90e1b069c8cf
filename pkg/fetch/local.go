package fetch

import (
	"context"
	"fmt"
	"os"

	"github.com/shortdoom/audit-compare/pkg/logging"
)

// LocalProvider resolves a locator that already names a directory on
// disk. Nothing is copied; the comparison reads the tree in place.
type LocalProvider struct {
	logger logging.Logger
}

// Fetch validates the directory and returns it unchanged
func (p *LocalProvider) Fetch(ctx context.Context, locator string) (string, error) {
	info, err := os.Stat(locator)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrTreeUnavailable, locator, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrTreeUnavailable, locator)
	}

	p.logger.Debug(ctx, "using local tree", logging.Fields{"path": locator})
	return locator, nil
}
