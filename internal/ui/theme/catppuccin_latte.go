package theme

import "github.com/charmbracelet/lipgloss"

// CatppuccinLatte is the light companion to Mocha.
var CatppuccinLatte = Theme{
	Name:    "Catppuccin Latte",
	Bg:      lipgloss.Color("#eff1f5"),
	BgAlt:   lipgloss.Color("#e6e9ef"),
	Surface: lipgloss.Color("#ccd0da"),
	Overlay: lipgloss.Color("#9ca0b0"),

	Text:    lipgloss.Color("#4c4f69"),
	Subtext: lipgloss.Color("#6c6f85"),
	Muted:   lipgloss.Color("#8c8fa1"),

	Red:    lipgloss.Color("#d20f39"),
	Orange: lipgloss.Color("#fe640b"),
	Yellow: lipgloss.Color("#df8e1d"),
	Green:  lipgloss.Color("#40a02b"),
	Teal:   lipgloss.Color("#179299"),
	Blue:   lipgloss.Color("#1e66f5"),
	Purple: lipgloss.Color("#8839ef"),
	Pink:   lipgloss.Color("#ea76cb"),

	BorderFocused:   lipgloss.Color("#8839ef"),
	BorderUnfocused: lipgloss.Color("#8c8fa1"),
	StatusOK:        lipgloss.Color("#40a02b"),
	StatusError:     lipgloss.Color("#d20f39"),
	StatusWarning:   lipgloss.Color("#df8e1d"),
}
