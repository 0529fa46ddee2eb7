// Package app wires the panels, components, and stores into the root
// Bubble Tea model.
package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tkaraca/restel/internal/auth/oauth2"
	"github.com/tkaraca/restel/internal/client"
	"github.com/tkaraca/restel/internal/config"
	"github.com/tkaraca/restel/internal/core/history"
	"github.com/tkaraca/restel/internal/core/request"
	"github.com/tkaraca/restel/internal/export"
	"github.com/tkaraca/restel/internal/ui/components"
	"github.com/tkaraca/restel/internal/ui/layout"
	"github.com/tkaraca/restel/internal/ui/msgs"
	"github.com/tkaraca/restel/internal/ui/panels/editor"
	"github.com/tkaraca/restel/internal/ui/panels/response"
	"github.com/tkaraca/restel/internal/ui/panels/sidebar"
	"github.com/tkaraca/restel/internal/ui/theme"
)

// App is the root Bubble Tea model.
type App struct {
	sidebar  sidebar.Model
	editor   editor.Model
	response response.Model

	statusBar      components.StatusBar
	commandPalette components.CommandPalette
	help           components.Help
	toast          components.Toast

	client  *client.Client
	history *history.Store
	cfg     config.Config

	requestDir  string
	currentPath string // file backing the editor, "" for unsaved
	lastResp    *client.Response

	mode           msgs.AppMode
	focus          msgs.PanelFocus
	sidebarVisible bool
	layout         layout.PanelLayout
	keys           KeyMap

	theme  theme.Theme
	styles theme.Styles

	width  int
	height int
	ready  bool
}

// New creates the root model from the loaded configuration.
func New(cfg config.Config) App {
	t := theme.Resolve(cfg.Theme)
	s := theme.NewStyles(t)

	c := client.New()
	if cfg.DefaultTimeout > 0 {
		c.SetTimeout(cfg.DefaultTimeout)
	}

	requestDir := cfg.RequestDir
	if requestDir == "" {
		requestDir, _ = os.Getwd()
	}

	var histStore *history.Store
	dataDir := filepath.Join(os.Getenv("HOME"), ".local", "share", "restel")
	os.MkdirAll(dataDir, 0755)
	if hs, err := history.Open(filepath.Join(dataDir, "history.db")); err == nil {
		histStore = hs
	}

	a := App{
		sidebar:  sidebar.New(s),
		editor:   editor.New(s),
		response: response.New(t, s),

		statusBar:      components.NewStatusBar(t, s),
		commandPalette: components.NewCommandPalette(t, s),
		help:           components.NewHelp(t, s),
		toast:          components.NewToast(t, s),

		client:  c,
		history: histStore,
		cfg:     cfg,

		requestDir: requestDir,

		mode:           msgs.ModeNormal,
		focus:          msgs.FocusEditor,
		sidebarVisible: true,
		keys:           DefaultKeyMap(),

		theme:  t,
		styles: s,
	}

	a.loadFiles()
	a.loadHistory()
	return a
}

// OpenFile loads a request file into the editor at startup.
func (a *App) OpenFile(path string) error {
	req, err := request.LoadFile(path)
	if err != nil {
		return err
	}
	a.editor.LoadRequest(req)
	a.currentPath = path
	a.statusBar.SetFile(fileLabel(path))
	return nil
}

func (a App) Init() tea.Cmd {
	return a.response.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout = layout.Calculate(msg.Width, msg.Height, a.sidebarVisible)
		a.resizePanels()
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		if a.commandPalette.Visible {
			var cmd tea.Cmd
			a.commandPalette, cmd = a.commandPalette.Update(msg)
			return a, cmd
		}
		if a.help.Visible {
			var cmd tea.Cmd
			a.help, cmd = a.help.Update(msg)
			return a, cmd
		}
		if a.focus == msgs.FocusSidebar && a.sidebar.Filtering() {
			var cmd tea.Cmd
			a.sidebar, cmd = a.sidebar.Update(msg)
			return a, cmd
		}
		if a.focus == msgs.FocusResponse && a.response.Searching() {
			var cmd tea.Cmd
			a.response, cmd = a.response.Update(msg)
			return a, cmd
		}
		if a.focus == msgs.FocusEditor && a.editor.Editing() {
			return a.updateEditorInsert(msg)
		}

		if cmd := a.handleGlobalKey(msg); cmd != nil {
			return a, cmd
		}
		return a.handlePanelKey(msg)

	case msgs.SendRequestMsg:
		return a.sendRequest()

	case msgs.RequestSentMsg:
		return a.handleRequestSent(msg)

	case msgs.NewRequestMsg:
		a.editor.Reset()
		a.currentPath = ""
		a.statusBar.SetFile("")
		a.focus = msgs.FocusEditor
		a.updateFocus()
		return a, nil

	case msgs.SaveRequestMsg:
		return a.saveRequest()

	case msgs.RequestSelectedMsg:
		return a.handleRequestSelected(msg)

	case msgs.HistorySelectedMsg:
		return a.handleHistorySelected(msg)

	case msgs.ToggleSidebarMsg:
		a.sidebarVisible = !a.sidebarVisible
		a.layout = layout.Calculate(a.width, a.height, a.sidebarVisible)
		a.resizePanels()
		return a, nil

	case msgs.OpenCommandPaletteMsg:
		a.mode = msgs.ModeCommandPalette
		a.statusBar.SetMode(a.mode)
		a.commandPalette.Open()
		return a, nil

	case msgs.ShowHelpMsg:
		a.mode = msgs.ModeHelp
		a.statusBar.SetMode(a.mode)
		a.help.SetSize(a.width, a.height)
		a.help.Toggle()
		return a, nil

	case msgs.SetModeMsg:
		a.mode = msg.Mode
		a.statusBar.SetMode(msg.Mode)
		return a, nil

	case msgs.StatusMsg:
		a.statusBar.SetMessage(msg.Text)
		if msg.Duration > 0 {
			cmds = append(cmds, tea.Tick(msg.Duration, func(time.Time) tea.Msg {
				return msgs.StatusMsg{Text: ""}
			}))
		}
		return a, tea.Batch(cmds...)

	case msgs.ToastMsg:
		cmd := a.toast.Show(msg.Text, msg.IsError, msg.Duration)
		return a, cmd

	case msgs.SwitchThemeMsg:
		return a.handleSwitchTheme(msg)

	case msgs.CopyAsCurlMsg:
		return a.copyAsCurl()

	case msgs.FetchOAuth2TokenMsg:
		return a.fetchOAuth2Token()

	case msgs.OAuth2TokenMsg:
		return a.handleOAuth2Token(msg)

	case msgs.FocusPanelMsg:
		a.focus = msg.Panel
		a.updateFocus()
		return a, nil
	}

	var cmd tea.Cmd
	a.toast, cmd = a.toast.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	a.statusBar, cmd = a.statusBar.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	a.response, cmd = a.response.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (a App) handleGlobalKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return tea.Quit
	case key.Matches(msg, a.keys.SendRequest), msg.String() == "ctrl+enter":
		return func() tea.Msg { return msgs.SendRequestMsg{} }
	case key.Matches(msg, a.keys.CommandPalette):
		return func() tea.Msg { return msgs.OpenCommandPaletteMsg{} }
	case key.Matches(msg, a.keys.NewRequest):
		return func() tea.Msg { return msgs.NewRequestMsg{} }
	case key.Matches(msg, a.keys.SaveRequest):
		return func() tea.Msg { return msgs.SaveRequestMsg{} }
	}
	return nil
}

func (a App) handlePanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		a.cycleFocus(false)
		return a, nil
	case "shift+tab":
		a.cycleFocus(true)
		return a, nil
	case "b":
		a.sidebarVisible = !a.sidebarVisible
		a.layout = layout.Calculate(a.width, a.height, a.sidebarVisible)
		a.resizePanels()
		return a, nil
	case "?":
		a.mode = msgs.ModeHelp
		a.statusBar.SetMode(a.mode)
		a.help.SetSize(a.width, a.height)
		a.help.Toggle()
		return a, nil
	case "i":
		if a.focus == msgs.FocusEditor {
			a.mode = msgs.ModeInsert
			a.statusBar.SetMode(a.mode)
			a.editor.FocusURL()
			return a, nil
		}
	case "S":
		return a.sendRequest()
	}

	var cmd tea.Cmd
	switch a.focus {
	case msgs.FocusSidebar:
		a.sidebar, cmd = a.sidebar.Update(msg)
	case msgs.FocusEditor:
		a.editor, cmd = a.editor.Update(msg)
	case msgs.FocusResponse:
		a.response, cmd = a.response.Update(msg)
	}

	return a, cmd
}

func (a App) updateEditorInsert(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+enter" {
		return a.sendRequest()
	}

	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)

	if a.editor.Editing() {
		a.mode = msgs.ModeInsert
	} else {
		a.mode = msgs.ModeNormal
	}
	a.statusBar.SetMode(a.mode)

	return a, cmd
}

func (a *App) cycleFocus(reverse bool) {
	panels := []msgs.PanelFocus{msgs.FocusSidebar, msgs.FocusEditor, msgs.FocusResponse}
	if !a.sidebarVisible || a.layout.TwoPanelMode || a.layout.SinglePanel {
		panels = []msgs.PanelFocus{msgs.FocusEditor, msgs.FocusResponse}
	}

	idx := 0
	for i, p := range panels {
		if p == a.focus {
			idx = i
			break
		}
	}
	if reverse {
		idx = (idx - 1 + len(panels)) % len(panels)
	} else {
		idx = (idx + 1) % len(panels)
	}

	a.focus = panels[idx]
	a.updateFocus()
}

func (a *App) updateFocus() {
	a.sidebar.SetFocused(a.focus == msgs.FocusSidebar)
	a.editor.SetFocused(a.focus == msgs.FocusEditor)
	a.response.SetFocused(a.focus == msgs.FocusResponse)
}

func (a *App) resizePanels() {
	l := a.layout
	a.sidebar.SetSize(l.SidebarWidth, l.ContentHeight)
	a.editor.SetSize(l.EditorWidth, l.ContentHeight)
	a.response.SetSize(l.ResponseWidth, l.ContentHeight)
	a.statusBar.SetWidth(a.width)
	a.help.SetSize(a.width, a.height)
	a.updateFocus()
}

func (a *App) loadFiles() {
	entries, err := request.ListDir(a.requestDir)
	if err != nil {
		return
	}
	a.sidebar.SetFiles(entries)
}

func (a *App) loadHistory() {
	if a.history == nil {
		return
	}
	entries, err := a.history.List(20)
	if err != nil {
		return
	}
	a.sidebar.SetHistory(entries)
}

func (a App) sendRequest() (tea.Model, tea.Cmd) {
	req := a.editor.BuildRequest()
	if req.URL == "" {
		a.statusBar.SetMessage("URL is required")
		return a, nil
	}
	if a.cfg.Insecure && req.TLS == nil {
		req.TLS = &request.TLS{InsecureSkipVerify: true}
	}

	a.response.SetLoading(true)

	timeout := req.Timeout
	if timeout == 0 {
		timeout = a.cfg.DefaultTimeout
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	c := a.client
	cmd := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := c.Execute(ctx, req)
		return msgs.RequestSentMsg{Response: resp, Err: err}
	}

	return a, tea.Batch(cmd, a.response.Init())
}

func (a App) handleRequestSent(msg msgs.RequestSentMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		a.response.SetLoading(false)
		a.statusBar.SetMessage("Error: " + msg.Err.Error())
		cmd := a.toast.Show("Request failed: "+msg.Err.Error(), true, 5*time.Second)
		return a, cmd
	}

	resp := msg.Response
	a.lastResp = resp
	a.response.SetResponse(resp)
	a.statusBar.SetStatus(resp.StatusCode, resp.Duration, resp.Size, resp.ContentType)

	if a.history != nil {
		req := a.editor.BuildRequest()
		headersJSON, _ := json.Marshal(request.EnabledPairs(req.Headers))
		var reqBody string
		if req.Body != nil {
			reqBody = req.Body.Content
		}
		a.history.Add(history.Entry{
			Method:       req.Method,
			URL:          req.URL,
			StatusCode:   resp.StatusCode,
			Duration:     resp.Duration,
			Size:         resp.Size,
			RequestBody:  reqBody,
			ResponseBody: string(resp.Body),
			Headers:      string(headersJSON),
			SentAt:       time.Now(),
		})
		if a.cfg.HistoryLimit > 0 {
			a.history.Prune(a.cfg.HistoryLimit)
		}
		a.loadHistory()
	}

	return a, nil
}

func (a App) saveRequest() (tea.Model, tea.Cmd) {
	req := a.editor.BuildRequest()

	path := a.currentPath
	if path == "" {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			name = "untitled"
		}
		path = filepath.Join(a.requestDir, name+request.Ext)
	}

	if err := request.SaveFile(req, path); err != nil {
		cmd := a.toast.Show("Save failed: "+err.Error(), true, 3*time.Second)
		return a, cmd
	}

	a.currentPath = path
	a.statusBar.SetFile(fileLabel(path))
	a.loadFiles()
	cmd := a.toast.Show("Saved "+fileLabel(path), false, 2*time.Second)
	return a, cmd
}

func (a App) handleRequestSelected(msg msgs.RequestSelectedMsg) (tea.Model, tea.Cmd) {
	req, err := request.LoadFile(msg.Path)
	if err != nil {
		cmd := a.toast.Show("Load failed: "+err.Error(), true, 3*time.Second)
		return a, cmd
	}

	a.editor.LoadRequest(req)
	a.currentPath = msg.Path
	a.statusBar.SetFile(fileLabel(msg.Path))
	a.focus = msgs.FocusEditor
	a.updateFocus()
	return a, nil
}

func (a App) handleHistorySelected(msg msgs.HistorySelectedMsg) (tea.Model, tea.Cmd) {
	if a.history == nil {
		return a, nil
	}
	e, err := a.history.Get(msg.ID)
	if err != nil {
		return a, nil
	}

	req := request.New("history", e.Method, e.URL)
	if e.Headers != "" {
		var headers map[string]string
		if json.Unmarshal([]byte(e.Headers), &headers) == nil {
			for k, v := range headers {
				req.Headers = append(req.Headers, request.KVPair{Key: k, Value: v, Enabled: true})
			}
		}
	}
	if e.RequestBody != "" {
		bodyType := request.BodyRaw
		if json.Valid([]byte(e.RequestBody)) {
			bodyType = request.BodyJSON
		}
		req.Body = &request.Body{Type: bodyType, Content: e.RequestBody}
	}

	a.editor.LoadRequest(req)
	a.currentPath = ""
	a.statusBar.SetFile("")
	a.focus = msgs.FocusEditor
	a.updateFocus()
	return a, nil
}

func (a App) handleSwitchTheme(msg msgs.SwitchThemeMsg) (tea.Model, tea.Cmd) {
	if msg.Name == "" {
		a.commandPalette.OpenThemePicker(theme.Names())
		a.mode = msgs.ModeCommandPalette
		a.statusBar.SetMode(a.mode)
		return a, nil
	}

	t, ok := theme.Get(msg.Name)
	if !ok {
		cmd := a.toast.Show("Unknown theme: "+msg.Name, true, 2*time.Second)
		return a, cmd
	}

	a.applyTheme(t)
	cmd := a.toast.Show("Theme: "+msg.Name, false, 2*time.Second)
	return a, cmd
}

// applyTheme rebuilds styled components, carrying the editor state,
// file lists, and last response over.
func (a *App) applyTheme(t theme.Theme) {
	s := theme.NewStyles(t)
	a.theme = t
	a.styles = s

	current := a.editor.BuildRequest()

	a.sidebar = sidebar.New(s)
	a.editor = editor.New(s)
	a.response = response.New(t, s)
	a.statusBar = components.NewStatusBar(t, s)
	a.commandPalette = components.NewCommandPalette(t, s)
	a.help = components.NewHelp(t, s)
	a.toast = components.NewToast(t, s)

	a.editor.LoadRequest(current)
	a.loadFiles()
	a.loadHistory()
	if a.lastResp != nil {
		a.response.SetResponse(a.lastResp)
		a.statusBar.SetStatus(a.lastResp.StatusCode, a.lastResp.Duration, a.lastResp.Size, a.lastResp.ContentType)
	}
	if a.currentPath != "" {
		a.statusBar.SetFile(fileLabel(a.currentPath))
	}
	a.statusBar.SetMode(a.mode)
	a.resizePanels()
}

func (a App) copyAsCurl() (tea.Model, tea.Cmd) {
	req := a.editor.BuildRequest()
	if req.URL == "" {
		cmd := a.toast.Show("No URL to copy", true, 2*time.Second)
		return a, cmd
	}

	if err := clipboard.WriteAll(export.AsCurl(req)); err != nil {
		cmd := a.toast.Show("Clipboard error: "+err.Error(), true, 3*time.Second)
		return a, cmd
	}
	cmd := a.toast.Show("Copied as cURL", false, 2*time.Second)
	return a, cmd
}

func (a App) fetchOAuth2Token() (tea.Model, tea.Cmd) {
	auth := a.editor.AuthRef().BuildAuth()
	if auth == nil || auth.Type != request.AuthOAuth2 || auth.OAuth2 == nil {
		cmd := a.toast.Show("OAuth2 is not configured", true, 2*time.Second)
		return a, cmd
	}

	cfg := oauth2.Config{
		GrantType:    auth.OAuth2.GrantType,
		TokenURL:     auth.OAuth2.TokenURL,
		ClientID:     auth.OAuth2.ClientID,
		ClientSecret: auth.OAuth2.ClientSecret,
		Scope:        auth.OAuth2.Scope,
		Username:     auth.OAuth2.Username,
		Password:     auth.OAuth2.Password,
	}

	cmd := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		tok, err := oauth2.Fetch(ctx, cfg)
		if err != nil {
			return msgs.OAuth2TokenMsg{Err: err}
		}
		return msgs.OAuth2TokenMsg{AccessToken: tok.AccessToken, ExpiresIn: tok.ExpiresIn}
	}
	return a, cmd
}

func (a App) handleOAuth2Token(msg msgs.OAuth2TokenMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		cmd := a.toast.Show("Token fetch failed: "+msg.Err.Error(), true, 5*time.Second)
		return a, cmd
	}
	a.editor.AuthRef().SetAccessToken(msg.AccessToken)
	cmd := a.toast.Show("Access token acquired", false, 2*time.Second)
	return a, cmd
}

func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	var panels string
	if a.layout.SinglePanel {
		switch a.focus {
		case msgs.FocusSidebar:
			panels = a.sidebar.View()
		case msgs.FocusEditor:
			panels = a.editor.View()
		case msgs.FocusResponse:
			panels = a.response.View()
		}
	} else {
		var views []string
		if a.layout.SidebarVisible {
			views = append(views, a.sidebar.View())
		}
		views = append(views, a.editor.View(), a.response.View())
		panels = lipgloss.JoinHorizontal(lipgloss.Top, views...)
	}

	main := lipgloss.JoinVertical(lipgloss.Left, panels, a.statusBar.View())

	if a.commandPalette.Visible {
		main = a.overlayCenter(a.commandPalette.View())
	}
	if a.help.Visible {
		main = a.overlayCenter(a.help.View())
	}
	if a.toast.Visible {
		main = overlayTopRight(main, a.toast.View(), a.width)
	}

	return main
}

func (a App) overlayCenter(overlay string) string {
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, overlay,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(a.theme.Bg),
	)
}

func overlayTopRight(bg, overlay string, width int) string {
	gap := width - lipgloss.Width(overlay) - 2
	if gap < 0 {
		gap = 0
	}
	positioned := lipgloss.NewStyle().MarginLeft(gap).Render(overlay)
	return positioned + "\n" + bg
}

// fileLabel is the short display name of a request file.
func fileLabel(path string) string {
	return strings.TrimSuffix(filepath.Base(path), request.Ext)
}
