// Package msgs defines the Bubble Tea messages exchanged between the
// application model and its panels.
package msgs

import (
	"time"

	"github.com/tkaraca/restel/internal/client"
)

// PanelFocus identifies a focusable panel.
type PanelFocus int

const (
	FocusSidebar PanelFocus = iota
	FocusEditor
	FocusResponse
)

// AppMode represents the current input mode.
type AppMode int

const (
	ModeNormal AppMode = iota
	ModeInsert
	ModeCommandPalette
	ModeHelp
)

func (m AppMode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeCommandPalette:
		return "COMMAND"
	case ModeHelp:
		return "HELP"
	default:
		return "UNKNOWN"
	}
}

// FocusPanelMsg requests focus change to a specific panel.
type FocusPanelMsg struct {
	Panel PanelFocus
}

// ToggleSidebarMsg toggles sidebar visibility.
type ToggleSidebarMsg struct{}

// SendRequestMsg triggers sending the current request.
type SendRequestMsg struct{}

// RequestSentMsg is emitted when a request completes.
type RequestSentMsg struct {
	Response *client.Response
	Err      error
}

// SaveRequestMsg saves the current request to its file.
type SaveRequestMsg struct{}

// RequestSelectedMsg is emitted when a saved request is picked from the sidebar.
type RequestSelectedMsg struct {
	Path string
}

// NewRequestMsg resets the editor to an empty request.
type NewRequestMsg struct{}

// HistorySelectedMsg is emitted when a history entry is selected.
type HistorySelectedMsg struct {
	ID int64
}

// OpenCommandPaletteMsg opens the command palette.
type OpenCommandPaletteMsg struct{}

// ShowHelpMsg toggles the help overlay.
type ShowHelpMsg struct{}

// SetModeMsg changes the app mode.
type SetModeMsg struct {
	Mode AppMode
}

// StatusMsg sets a temporary status bar message.
type StatusMsg struct {
	Text     string
	Duration time.Duration
}

// ToastMsg shows a toast notification.
type ToastMsg struct {
	Text     string
	Duration time.Duration
	IsError  bool
}

// SwitchThemeMsg requests switching to a named theme.
type SwitchThemeMsg struct {
	Name string
}

// CopyAsCurlMsg copies the current request to the clipboard as a curl command.
type CopyAsCurlMsg struct{}

// OAuth2TokenMsg is emitted when an OAuth2 token fetch finishes.
type OAuth2TokenMsg struct {
	AccessToken string
	ExpiresIn   int
	Err         error
}

// FetchOAuth2TokenMsg triggers an OAuth2 token fetch for the current auth config.
type FetchOAuth2TokenMsg struct{}
