package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shortdoom/audit-compare/internal/platform"
)

// DefaultMetadataDirs lists directory names excluded from traversal
// at every depth.
var DefaultMetadataDirs = []string{".git"}

// Local is a filesystem-backed tree
type Local struct {
	rootPath     string
	metadataDirs map[string]bool
}

// Option configures a Local tree
type Option func(*Local)

// WithMetadataDirs overrides the set of control-metadata directory
// names excluded from traversal.
func WithMetadataDirs(names []string) Option {
	return func(l *Local) {
		l.metadataDirs = make(map[string]bool, len(names))
		for _, n := range names {
			l.metadataDirs[n] = true
		}
	}
}

// NewLocal creates a tree handle rooted at the given directory
func NewLocal(rootPath string, opts ...Option) (*Local, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", absPath)
	}

	l := &Local{rootPath: absPath}
	WithMetadataDirs(DefaultMetadataDirs)(l)
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Root returns the absolute root path
func (l *Local) Root() string {
	return l.rootPath
}

// List returns every regular file under the root in walk order
func (l *Local) List(ctx context.Context) ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.WalkDir(l.rootPath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			if p != l.rootPath && l.metadataDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		relPath, err := filepath.Rel(l.rootPath, p)
		if err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		files = append(files, FileInfo{
			Path:         p,
			RelativePath: platform.ToPosix(relPath),
			Size:         info.Size(),
			ModTime:      info.ModTime(),
		})

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	return files, nil
}

// Read opens a file for reading
func (l *Local) Read(ctx context.Context, relPath string) (io.ReadCloser, error) {
	file, err := os.Open(l.fullPath(relPath))
	if err != nil {
		return nil, err
	}

	return file, nil
}

// Exists checks if a relative path exists in the tree
func (l *Local) Exists(ctx context.Context, relPath string) (bool, error) {
	_, err := os.Stat(l.fullPath(relPath))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check existence: %w", err)
}

// Stat returns file metadata
func (l *Local) Stat(ctx context.Context, relPath string) (*FileInfo, error) {
	fullPath := l.fullPath(relPath)

	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, err
	}

	return &FileInfo{
		Path:         fullPath,
		RelativePath: platform.ToPosix(relPath),
		Size:         info.Size(),
		ModTime:      info.ModTime(),
	}, nil
}

// Close releases resources (no-op for local filesystem)
func (l *Local) Close() error {
	return nil
}

func (l *Local) fullPath(relPath string) string {
	return filepath.Join(l.rootPath, platform.FromPosix(relPath))
}
