package reconcile

import (
	"path/filepath"
	"strings"
)

// excluded reports whether a relative path matches any of the
// exclusion patterns. Patterns support:
//   - basename globs: *.lock, *.sum
//   - directory patterns: vendor/, node_modules/
//   - path patterns: build/*, **/testdata/*
func excluded(relativePath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	path := filepath.ToSlash(relativePath)
	base := filepath.Base(relativePath)

	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		pattern = filepath.ToSlash(pattern)

		if strings.HasSuffix(pattern, "/") {
			dir := strings.TrimSuffix(pattern, "/")
			if path == dir ||
				strings.HasPrefix(path, dir+"/") ||
				strings.Contains(path, "/"+dir+"/") {
				return true
			}
			continue
		}

		if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
			if matchComponent(base, rest) || anySuffixMatches(path, rest) {
				return true
			}
			continue
		}

		if strings.Contains(pattern, "/") {
			if matched, _ := filepath.Match(pattern, path); matched {
				return true
			}
			if strings.HasSuffix(path, pattern) {
				return true
			}
			continue
		}

		if matchComponent(base, pattern) {
			return true
		}
	}

	return false
}

func matchComponent(name, pattern string) bool {
	matched, _ := filepath.Match(pattern, name)
	return matched
}

// anySuffixMatches tries the pattern against the path anchored at
// every directory depth, so **/testdata/* covers testdata wherever it
// sits in the tree.
func anySuffixMatches(path, pattern string) bool {
	parts := strings.Split(path, "/")
	for i := range parts {
		if matched, _ := filepath.Match(pattern, strings.Join(parts[i:], "/")); matched {
			return true
		}
	}
	return false
}
