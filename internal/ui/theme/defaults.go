package theme

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
)

// CatppuccinMocha is the default dark theme.
var CatppuccinMocha = Theme{
	Name:    "Catppuccin Mocha",
	Bg:      lipgloss.Color("#1e1e2e"),
	BgAlt:   lipgloss.Color("#181825"),
	Surface: lipgloss.Color("#313244"),
	Overlay: lipgloss.Color("#45475a"),

	Text:    lipgloss.Color("#cdd6f4"),
	Subtext: lipgloss.Color("#a6adc8"),
	Muted:   lipgloss.Color("#585b70"),

	Red:    lipgloss.Color("#f38ba8"),
	Orange: lipgloss.Color("#fab387"),
	Yellow: lipgloss.Color("#f9e2af"),
	Green:  lipgloss.Color("#a6e3a1"),
	Teal:   lipgloss.Color("#94e2d5"),
	Blue:   lipgloss.Color("#89b4fa"),
	Purple: lipgloss.Color("#cba6f7"),
	Pink:   lipgloss.Color("#f5c2e7"),

	BorderFocused:   lipgloss.Color("#cba6f7"),
	BorderUnfocused: lipgloss.Color("#585b70"),
	StatusOK:        lipgloss.Color("#a6e3a1"),
	StatusError:     lipgloss.Color("#f38ba8"),
	StatusWarning:   lipgloss.Color("#f9e2af"),
}

// Default returns the default theme.
func Default() Theme {
	return CatppuccinMocha
}

// Resolve looks up a theme by name: catalog -> custom themes -> fallback to Mocha.
func Resolve(name string) Theme {
	if t, ok := Get(name); ok {
		return t
	}

	home, err := os.UserHomeDir()
	if err == nil {
		customDir := filepath.Join(home, ".config", "restel", "themes")
		customs := LoadCustomThemes(customDir)
		if t, ok := customs[normalizeKey(name)]; ok {
			return t
		}
	}

	return CatppuccinMocha
}
