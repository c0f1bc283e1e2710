package config

import (
	"path/filepath"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("STUDYSMARTER_HOME", t.TempDir())

	cfg, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.StorageDriver != "file" {
		t.Fatalf("StorageDriver: got %s want file", cfg.StorageDriver)
	}
	if cfg.HTTPPort != 8080 {
		t.Fatalf("HTTPPort: got %d want 8080", cfg.HTTPPort)
	}
	if cfg.StateDir == "" {
		t.Fatalf("StateDir not derived")
	}
}

func TestNew_EnvOverrides(t *testing.T) {
	t.Setenv("STUDYSMARTER_HOME", t.TempDir())
	t.Setenv("STUDYSMARTER_STORAGE_DRIVER", "sqlite")
	t.Setenv("STUDYSMARTER_HTTP_PORT", "9191")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.StorageDriver != "sqlite" {
		t.Fatalf("StorageDriver: got %s want sqlite", cfg.StorageDriver)
	}
	if cfg.HTTPPort != 9191 {
		t.Fatalf("HTTPPort: got %d want 9191", cfg.HTTPPort)
	}
	if filepath.Base(cfg.SQLitePath) != "study.db" {
		t.Fatalf("SQLitePath not derived: %s", cfg.SQLitePath)
	}
}

func TestResolveDefaults_RejectsUnknownDriver(t *testing.T) {
	cfg := &Config{StorageDriver: "redis"}
	if err := cfg.ResolveDefaults(); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}
