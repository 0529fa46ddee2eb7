package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	got := DefaultConfig()

	if got.Theme != "catppuccin-mocha" {
		t.Fatalf("Theme = %q, want catppuccin-mocha", got.Theme)
	}
	if got.DefaultTimeout != 30*time.Second {
		t.Fatalf("DefaultTimeout = %s, want 30s", got.DefaultTimeout)
	}
	if got.HistoryLimit != 500 {
		t.Fatalf("HistoryLimit = %d, want 500", got.HistoryLimit)
	}
}

func TestLoadReturnsDefaultsWhenConfigMissing(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got := Load()
	want := DefaultConfig()

	if got != want {
		t.Fatalf("Load() = %#v, want defaults %#v", got, want)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	configDir := filepath.Join(home, ".config", "restel")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}

	configYAML := "theme: nord\ndefault_timeout: 42s\ninsecure: true\nhistory_limit: 20\nrequest_dir: /tmp/reqs\n"
	path := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(path, []byte(configYAML), 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	got := Load()

	if got.Theme != "nord" {
		t.Fatalf("Theme = %q, want nord", got.Theme)
	}
	if got.DefaultTimeout != 42*time.Second {
		t.Fatalf("DefaultTimeout = %s, want 42s", got.DefaultTimeout)
	}
	if !got.Insecure {
		t.Fatal("Insecure = false, want true")
	}
	if got.HistoryLimit != 20 {
		t.Fatalf("HistoryLimit = %d, want 20", got.HistoryLimit)
	}
	if got.RequestDir != "/tmp/reqs" {
		t.Fatalf("RequestDir = %q, want /tmp/reqs", got.RequestDir)
	}
}

func TestLoadMergesPartialConfigWithDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	configDir := filepath.Join(home, ".config", "restel")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}

	path := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(path, []byte("theme: gruvbox\n"), 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	got := Load()
	want := DefaultConfig()
	want.Theme = "gruvbox"

	if got != want {
		t.Fatalf("Load() = %#v, want %#v", got, want)
	}
}

func TestLoadInvalidYAMLKeepsDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	configDir := filepath.Join(home, ".config", "restel")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}

	path := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(path, []byte("theme: [\n"), 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	got := Load()
	want := DefaultConfig()

	if got != want {
		t.Fatalf("Load() = %#v, want defaults %#v", got, want)
	}
}
