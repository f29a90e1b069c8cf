package fetch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/shortdoom/audit-compare/internal/platform"
	"github.com/shortdoom/audit-compare/pkg/logging"
)

// GitProvider clones remote repositories by shelling out to the git
// command. Every fetch replaces the previous clone wholesale so stale
// files from earlier runs cannot leak into a comparison.
type GitProvider struct {
	dataDir string
	depth   int
	logger  logging.Logger
}

// Fetch clones the repository into the data directory and returns the
// clone's root path.
func (p *GitProvider) Fetch(ctx context.Context, locator string) (string, error) {
	dest := filepath.Join(p.dataDir, platform.RepoName(locator))

	if err := os.RemoveAll(dest); err != nil {
		return "", fmt.Errorf("%w: clear %s: %v", ErrTreeUnavailable, dest, err)
	}
	if err := os.MkdirAll(p.dataDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create data dir %s: %v", ErrTreeUnavailable, p.dataDir, err)
	}

	args := []string{"clone", "--quiet"}
	if p.depth > 0 {
		args = append(args, "--depth", strconv.Itoa(p.depth))
	}
	args = append(args, locator, dest)

	p.logger.Info(ctx, "cloning repository", logging.Fields{
		"locator": locator,
		"dest":    dest,
		"depth":   p.depth,
	})

	cmd := exec.CommandContext(ctx, "git", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		p.logger.Error(ctx, "git clone failed", err, logging.Fields{"locator": locator})
		return "", fmt.Errorf("%w: git clone %s: %v: %s",
			ErrTreeUnavailable, locator, err, bytes.TrimSpace(stderr.Bytes()))
	}

	return dest, nil
}
