package platform

import (
	"testing"
)

func TestToPosix(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"dir/file.txt", "dir/file.txt"},
		{"./dir/file.txt", "dir/file.txt"},
		{"dir//file.txt", "dir/file.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ToPosix(tt.input); got != tt.expected {
				t.Errorf("ToPosix(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestBasename(t *testing.T) {
	if got := Basename("src/util.go"); got != "util.go" {
		t.Errorf("Basename() = %q, want util.go", got)
	}
	if got := Basename("util.go"); got != "util.go" {
		t.Errorf("Basename() = %q, want util.go", got)
	}
}

func TestSplitDir(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"src/util.go", "src"},
		{"a/b/c.txt", "a/b"},
		{"root.txt", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SplitDir(tt.input); got != tt.expected {
				t.Errorf("SplitDir(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExtension(t *testing.T) {
	if got := Extension("contracts/Token.sol"); got != ".sol" {
		t.Errorf("Extension() = %q, want .sol", got)
	}
	if got := Extension("Makefile"); got != "" {
		t.Errorf("Extension() = %q, want empty", got)
	}
}

func TestRepoName(t *testing.T) {
	tests := []struct {
		locator  string
		expected string
	}{
		{"https://github.com/reserve-protocol/protocol", "protocol"},
		{"https://github.com/code-423n4/2024-07-reserve.git", "2024-07-reserve"},
		{"git@github.com:org/project.git", "project"},
		{"/home/user/checkouts/project", "project"},
		{"project", "project"},
	}

	for _, tt := range tests {
		t.Run(tt.locator, func(t *testing.T) {
			if got := RepoName(tt.locator); got != tt.expected {
				t.Errorf("RepoName(%q) = %q, want %q", tt.locator, got, tt.expected)
			}
		})
	}
}
