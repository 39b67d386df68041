package logging

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileLoggerJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	logger, err := NewFileLogger(FileLoggerConfig{
		Path:   path,
		Format: FormatJSON,
		Level:  InfoLevel,
	})
	if err != nil {
		t.Fatalf("NewFileLogger() error: %v", err)
	}

	ctx := context.Background()
	logger.Info(ctx, "file skipped", Fields{"path": "a.txt", "reason": "not text"})
	logger.Debug(ctx, "suppressed below level", nil)
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %q", len(lines), lines)
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not valid JSON: %v", err)
	}
	if entry["message"] != "file skipped" || entry["path"] != "a.txt" {
		t.Errorf("unexpected entry: %v", entry)
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
}

func TestFileLoggerWithFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	logger, err := NewFileLogger(FileLoggerConfig{
		Path:   path,
		Format: FormatJSON,
		Level:  DebugLevel,
	})
	if err != nil {
		t.Fatalf("NewFileLogger() error: %v", err)
	}

	child := logger.WithFields(Fields{"operation_id": "op-1"})
	child.Info(context.Background(), "started", nil)
	logger.Close()

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "op-1") {
		t.Error("inherited field missing from log output")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug": DebugLevel,
		"info":  InfoLevel,
		"warn":  WarnLevel,
		"error": ErrorLevel,
		"bogus": InfoLevel,
		"":      InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
