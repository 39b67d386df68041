package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/romtools/romtrace/pkg/models"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default configuration must validate, got %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero workers", func(c *Config) { c.Performance.MaxWorkers = 0 }, "performance.max_workers"},
		{"bad output format", func(c *Config) { c.Output.Format = "xml" }, "output.format"},
		{"bad log format", func(c *Config) { c.Logging.Format = "yaml" }, "logging.format"},
		{"bad log level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			var verr *models.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if verr.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, verr.Field)
			}
		})
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Match.DiffMode = true
	cfg.Performance.MaxWorkers = 8
	cfg.Exclude = []string{"*.img"}

	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	if err := SaveToFile(cfg, path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if !loaded.Match.DiffMode {
		t.Error("diff mode not preserved")
	}
	if loaded.Performance.MaxWorkers != 8 {
		t.Errorf("expected 8 workers, got %d", loaded.Performance.MaxWorkers)
	}
	if len(loaded.Exclude) != 1 || loaded.Exclude[0] != "*.img" {
		t.Errorf("exclude patterns not preserved: %v", loaded.Exclude)
	}
}

func TestLoadFromFileRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("performance:\n  max_workers: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromFile(path); err == nil {
		t.Fatal("expected error for invalid configuration")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
