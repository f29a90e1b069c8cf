package platform

import (
	"path"
	"path/filepath"
	"strings"
)

// ToPosix converts a platform-specific relative path to the POSIX form
// used for classification and display (`/`-separated, cleaned).
func ToPosix(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

// FromPosix converts a POSIX-style relative path back to the platform
// form for filesystem access.
func FromPosix(p string) string {
	return filepath.FromSlash(p)
}

// Basename returns the final element of a POSIX-style path.
func Basename(p string) string {
	return path.Base(p)
}

// SplitDir returns the directory portion of a POSIX-style path,
// "" for paths at the tree root.
func SplitDir(p string) string {
	dir := path.Dir(p)
	if dir == "." {
		return ""
	}
	return dir
}

// Extension returns the file extension including the dot, "" if none.
func Extension(p string) string {
	return path.Ext(p)
}

// RepoName derives a directory name from a repository locator,
// e.g. "https://github.com/org/project.git" -> "project".
func RepoName(locator string) string {
	name := strings.TrimSuffix(strings.TrimRight(locator, "/"), ".git")
	if i := strings.LastIndexAny(name, "/\\:"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
