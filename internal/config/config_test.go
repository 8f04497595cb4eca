package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SysfsDir != "/sys/class/block" {
		t.Errorf("SysfsDir = %q", cfg.SysfsDir)
	}
	if cfg.DevDir != "/dev" {
		t.Errorf("DevDir = %q", cfg.DevDir)
	}
	if cfg.MountsFile != "/proc/self/mounts" {
		t.Errorf("MountsFile = %q", cfg.MountsFile)
	}
	if cfg.Journal != "" {
		t.Errorf("Journal = %q, want disabled by default", cfg.Journal)
	}
	if cfg.LogLevel != "warning" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("sysfs_dir: /tmp/sysfs\njournal: /tmp/search.db\nlog_level: debug\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SysfsDir != "/tmp/sysfs" {
		t.Errorf("SysfsDir = %q", cfg.SysfsDir)
	}
	if cfg.Journal != "/tmp/search.db" {
		t.Errorf("Journal = %q", cfg.Journal)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	// Unset fields keep their defaults.
	if cfg.DevDir != "/dev" {
		t.Errorf("DevDir = %q, want default", cfg.DevDir)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load of invalid yaml succeeded, want error")
	}
}
