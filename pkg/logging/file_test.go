package logging

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileLoggerText(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "run.log")

	logger, err := NewFileLogger(FileLoggerConfig{
		Path:   logPath,
		Format: FormatText,
		Level:  InfoLevel,
	})
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	ctx := context.Background()
	logger.Info(ctx, "comparison started", Fields{"pairs": 12})
	logger.Debug(ctx, "should be filtered", nil)
	logger.Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "[INFO] comparison started") {
		t.Errorf("log missing info entry: %s", content)
	}
	if !strings.Contains(content, "pairs=12") {
		t.Errorf("log missing fields: %s", content)
	}
	if strings.Contains(content, "should be filtered") {
		t.Error("debug entry should be filtered at info level")
	}
}

func TestFileLoggerJSON(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "run.log")

	logger, err := NewFileLogger(FileLoggerConfig{
		Path:   logPath,
		Format: FormatJSON,
		Level:  DebugLevel,
	})
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	logger.Error(context.Background(), "pair failed", os.ErrPermission, Fields{"path": "a.txt"})
	logger.Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("log entry is not valid JSON: %v", err)
	}

	if entry["level"] != "ERROR" {
		t.Errorf("level = %v, want ERROR", entry["level"])
	}
	if entry["message"] != "pair failed" {
		t.Errorf("message = %v, want 'pair failed'", entry["message"])
	}
	if entry["path"] != "a.txt" {
		t.Errorf("path = %v, want a.txt", entry["path"])
	}
	if entry["error"] == nil {
		t.Error("error field should be present")
	}
}

func TestFileLoggerWithFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "run.log")

	logger, err := NewFileLogger(FileLoggerConfig{
		Path:   logPath,
		Format: FormatText,
		Level:  InfoLevel,
	})
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	derived := logger.WithFields(Fields{"run_id": "abc123"})
	derived.Info(context.Background(), "hello", nil)
	logger.Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if !strings.Contains(string(data), "run_id=abc123") {
		t.Errorf("derived logger should carry its fields: %s", string(data))
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"bogus", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNullLogger(t *testing.T) {
	logger := NewNullLogger()
	ctx := context.Background()

	// Must not panic and must satisfy the interface
	logger.Debug(ctx, "msg", nil)
	logger.Info(ctx, "msg", Fields{"k": "v"})
	logger.Warn(ctx, "msg", nil)
	logger.Error(ctx, "msg", os.ErrClosed, nil)

	if logger.WithFields(Fields{"k": "v"}) != logger {
		t.Error("WithFields() should return the same null logger")
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	var _ Logger = logger
}
