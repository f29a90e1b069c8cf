package models

import (
	"errors"
	"testing"
)

func TestResultSort(t *testing.T) {
	result := &Result{
		Identical: []PathPair{
			{Left: "b.txt", Right: "b.txt"},
			{Left: "a.txt", Right: "a.txt"},
		},
		Differing: []PathPair{
			{Left: "src/util.go", Right: "pkg/util.go"},
			{Left: "main.go", Right: "main.go"},
		},
		OnlyLeft:  []string{"z.txt", "m.txt"},
		OnlyRight: []string{"y.txt", "c.txt"},
		Failures: []ComparisonFailure{
			{Left: "locked2.bin", Right: "locked2.bin", Err: errors.New("permission denied")},
			{Left: "locked1.bin", Right: "locked1.bin", Err: errors.New("permission denied")},
		},
	}

	result.Sort()

	if result.Identical[0].Left != "a.txt" {
		t.Errorf("Identical[0].Left = %s, want a.txt", result.Identical[0].Left)
	}
	if result.Differing[0].Left != "main.go" {
		t.Errorf("Differing[0].Left = %s, want main.go", result.Differing[0].Left)
	}
	if result.OnlyLeft[0] != "m.txt" {
		t.Errorf("OnlyLeft[0] = %s, want m.txt", result.OnlyLeft[0])
	}
	if result.OnlyRight[0] != "c.txt" {
		t.Errorf("OnlyRight[0] = %s, want c.txt", result.OnlyRight[0])
	}
	if result.Failures[0].Left != "locked1.bin" {
		t.Errorf("Failures[0].Left = %s, want locked1.bin", result.Failures[0].Left)
	}
}

func TestResultSortPairTieBreak(t *testing.T) {
	// Fuzzy matching can pair the same left path with several right
	// paths; ordering falls back to the right side.
	result := &Result{
		Differing: []PathPair{
			{Left: "util.go", Right: "pkg/util.go"},
			{Left: "util.go", Right: "internal/util.go"},
		},
	}

	result.Sort()

	if result.Differing[0].Right != "internal/util.go" {
		t.Errorf("Differing[0].Right = %s, want internal/util.go", result.Differing[0].Right)
	}
}

func TestRunStatusExitCode(t *testing.T) {
	tests := []struct {
		status   RunStatus
		expected int
	}{
		{StatusSuccess, 0},
		{StatusPartial, 1},
		{StatusFailed, 2},
		{RunStatus("unknown"), 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if tt.status.ExitCode() != tt.expected {
				t.Errorf("ExitCode() = %d, want %d", tt.status.ExitCode(), tt.expected)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{
		Field:   "compare.context_lines",
		Message: "must not be negative",
	}

	expected := "compare.context_lines: must not be negative"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}
}
