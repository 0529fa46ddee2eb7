package theme

import "github.com/charmbracelet/lipgloss"

var GruvboxDark = Theme{
	Name:    "Gruvbox Dark",
	Bg:      lipgloss.Color("#282828"),
	BgAlt:   lipgloss.Color("#1d2021"),
	Surface: lipgloss.Color("#3c3836"),
	Overlay: lipgloss.Color("#504945"),

	Text:    lipgloss.Color("#ebdbb2"),
	Subtext: lipgloss.Color("#d5c4a1"),
	Muted:   lipgloss.Color("#7c6f64"),

	Red:    lipgloss.Color("#fb4934"),
	Orange: lipgloss.Color("#fe8019"),
	Yellow: lipgloss.Color("#fabd2f"),
	Green:  lipgloss.Color("#b8bb26"),
	Teal:   lipgloss.Color("#8ec07c"),
	Blue:   lipgloss.Color("#83a598"),
	Purple: lipgloss.Color("#d3869b"),
	Pink:   lipgloss.Color("#d3869b"),

	BorderFocused:   lipgloss.Color("#fabd2f"),
	BorderUnfocused: lipgloss.Color("#7c6f64"),
	StatusOK:        lipgloss.Color("#b8bb26"),
	StatusError:     lipgloss.Color("#fb4934"),
	StatusWarning:   lipgloss.Color("#fabd2f"),
}
