package storage

import (
	"context"
	"io"
	"time"
)

// FileInfo represents metadata about a file in a tree
type FileInfo struct {
	// Path is the absolute path on the filesystem
	Path string

	// RelativePath is the POSIX-style path relative to the tree root
	RelativePath string

	// Size in bytes
	Size int64

	// ModTime is the last modification time
	ModTime time.Time
}

// Tree is a read-only handle on a rooted file hierarchy.
// Enumeration excludes control-metadata directories (e.g. .git) at any
// depth; such subtrees are skipped entirely, not merely hidden.
type Tree interface {
	// Root returns the absolute root path of the tree
	Root() string

	// List returns every regular file in the tree recursively,
	// in tree-walk order
	List(ctx context.Context) ([]FileInfo, error)

	// Read opens a file for reading by relative path
	Read(ctx context.Context, relPath string) (io.ReadCloser, error)

	// Exists checks if a relative path exists in the tree
	Exists(ctx context.Context, relPath string) (bool, error)

	// Stat returns file metadata by relative path
	Stat(ctx context.Context, relPath string) (*FileInfo, error)

	// Close releases any resources held by the tree handle
	Close() error
}
