package align

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// DecodeLines splits raw file content into the line sequence the
// aligner operates on. The second return is false when the content
// cannot be treated as text (invalid UTF-8 or embedded NUL bytes);
// callers render such pairs as a placeholder instead of aligning.
func DecodeLines(data []byte) ([]string, bool) {
	if !utf8.Valid(data) || bytes.IndexByte(data, 0) >= 0 {
		return nil, false
	}
	if len(data) == 0 {
		return []string{}, true
	}

	lines := strings.Split(string(data), "\n")
	// A trailing newline does not start a final empty line
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, true
}
