package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCreatesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("first-run load: %v", err)
	}
	if cfg.TickSeconds != 10 || cfg.SyncPollSeconds != 2 {
		t.Fatalf("unexpected defaults: %#v", cfg)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected 0600 permissions, got %o", perm)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	in := Default()
	in.DBPath = "/tmp/custom.db"
	in.DesktopNotifications = false
	in.AlertSound = "/usr/share/sounds/bell.oga"
	if err := Save(path, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.DBPath != in.DBPath || out.AlertSound != in.AlertSound || out.DesktopNotifications {
		t.Fatalf("round trip mismatch: %#v", out)
	}
}

func TestNormalizeFillsZeroValues(t *testing.T) {
	cfg := &Config{}
	cfg.Normalize()
	if cfg.DBPath == "" || cfg.TickSeconds != 10 || cfg.SchedulerBuffer != 16 {
		t.Fatalf("normalize missed defaults: %#v", cfg)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("EVENTREMINDER_DB_PATH", "/tmp/env.db")
	t.Setenv("EVENTREMINDER_TICK_SECONDS", "30")
	t.Setenv("EVENTREMINDER_DESKTOP_NOTIFICATIONS", "off")

	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "/tmp/env.db" {
		t.Fatalf("db path override missed: %q", cfg.DBPath)
	}
	if cfg.TickSeconds != 30 {
		t.Fatalf("tick override missed: %d", cfg.TickSeconds)
	}
	if cfg.DesktopNotifications {
		t.Fatal("bool override missed")
	}
}
