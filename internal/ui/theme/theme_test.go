package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestMethodColor(t *testing.T) {
	th := Default()
	cases := []struct {
		method string
		want   lipgloss.Color
	}{
		{"GET", th.Green},
		{"POST", th.Yellow},
		{"PUT", th.Blue},
		{"PATCH", th.Orange},
		{"DELETE", th.Red},
		{"HEAD", th.Teal},
		{"OPTIONS", th.Purple},
		{"UNKNOWN", th.Text},
	}
	for _, c := range cases {
		if got := th.MethodColor(c.method); got != c.want {
			t.Errorf("MethodColor(%s) = %v, want %v", c.method, got, c.want)
		}
	}
}

func TestStatusColor(t *testing.T) {
	th := Default()
	cases := []struct {
		code int
		want lipgloss.Color
	}{
		{200, th.Green},
		{204, th.Green},
		{301, th.Blue},
		{404, th.Yellow},
		{500, th.Red},
		{0, th.Text},
	}
	for _, c := range cases {
		if got := th.StatusColor(c.code); got != c.want {
			t.Errorf("StatusColor(%d) = %v, want %v", c.code, got, c.want)
		}
	}
}

func TestGet(t *testing.T) {
	if _, ok := Get("catppuccin-mocha"); !ok {
		t.Error("catppuccin-mocha should be registered")
	}
	if _, ok := Get("Catppuccin Mocha"); !ok {
		t.Error("lookup should normalize spaces and case")
	}
	if _, ok := Get("no-such-theme"); ok {
		t.Error("unknown theme should not resolve")
	}
}

func TestResolveFallsBackToMocha(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got := Resolve("definitely-not-a-theme")
	if got.Name != "Catppuccin Mocha" {
		t.Errorf("Resolve fallback = %s, want Catppuccin Mocha", got.Name)
	}
}

func TestLoadCustomTheme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "solar.yaml")
	data := "name: Solar\nbg: '#002b36'\ntext: '#839496'\ngreen: '#859900'\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	th, err := LoadCustomTheme(path)
	if err != nil {
		t.Fatalf("LoadCustomTheme failed: %v", err)
	}
	if th.Name != "Solar" {
		t.Errorf("Name = %q, want Solar", th.Name)
	}
	if th.Bg != lipgloss.Color("#002b36") {
		t.Errorf("Bg = %v", th.Bg)
	}
}

func TestLoadCustomTheme_NameFromFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mytheme.yaml")
	if err := os.WriteFile(path, []byte("bg: '#000000'\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	th, err := LoadCustomTheme(path)
	if err != nil {
		t.Fatalf("LoadCustomTheme failed: %v", err)
	}
	if th.Name != "mytheme" {
		t.Errorf("Name = %q, want mytheme", th.Name)
	}
}

func TestLoadCustomThemes_SkipsInvalid(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "good.yaml"), []byte("name: Good\n"), 0644)
	os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("name: [\n"), 0644)
	os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("nope"), 0644)

	themes := LoadCustomThemes(dir)
	if len(themes) != 1 {
		t.Fatalf("expected 1 theme, got %d", len(themes))
	}
	if _, ok := themes["good"]; !ok {
		t.Error("good theme missing")
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) < 4 {
		t.Fatalf("expected at least 4 themes, got %d", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}
