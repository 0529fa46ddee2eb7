// Package editor implements the request editor panel.
package editor

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tkaraca/restel/internal/core/request"
	"github.com/tkaraca/restel/internal/ui/components"
	"github.com/tkaraca/restel/internal/ui/msgs"
	"github.com/tkaraca/restel/internal/ui/theme"
)

// SubTab identifies the active sub-tab in the editor.
type SubTab int

const (
	TabParams SubTab = iota
	TabHeaders
	TabAuth
	TabBody
)

var subTabNames = []string{"Params", "Headers", "Auth", "Body"}

var bodyTypes = []string{request.BodyNone, request.BodyRaw, request.BodyJSON, request.BodyForm}

// Model is the request editor panel.
type Model struct {
	name        string
	method      string
	methodIndex int

	url textinput.Model

	activeTab SubTab
	params    components.KVTable
	headers   components.KVTable
	auth      AuthSection

	bodyTypeIdx int
	body        textarea.Model
	form        components.KVTable

	insecure bool
	timeout  time.Duration

	// Focus tracking: 0=method, 1=url, 2=sub-tab content
	focusField int

	focused bool
	width   int
	height  int
	styles  theme.Styles
}

// New creates a new editor panel.
func New(styles theme.Styles) Model {
	urlInput := textinput.New()
	urlInput.Placeholder = "Enter URL..."
	urlInput.CharLimit = 2048
	urlInput.Width = 40

	bodyArea := textarea.New()
	bodyArea.Placeholder = "Request body..."
	bodyArea.ShowLineNumbers = false
	bodyArea.CharLimit = 0
	bodyArea.SetWidth(40)
	bodyArea.SetHeight(6)

	headers := components.NewKVTable(styles)
	headers.SetPairs([]request.KVPair{
		{Key: "Accept", Value: "*/*", Enabled: true},
	})

	return Model{
		name:    "untitled",
		method:  "GET",
		url:     urlInput,
		params:  components.NewKVTable(styles),
		headers: headers,
		auth:    NewAuthSection(styles),
		body:    bodyArea,
		form:    components.NewKVTable(styles),
		styles:  styles,
		width:   60,
		height:  20,
	}
}

// SetFocused sets whether the editor panel is focused.
func (m *Model) SetFocused(focused bool) {
	m.focused = focused
}

// SetSize sets the panel dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h

	innerW := w - 4
	if innerW < 10 {
		innerW = 10
	}

	urlW := innerW - 12
	if urlW < 10 {
		urlW = 10
	}
	m.url.Width = urlW

	m.params.SetSize(innerW)
	m.headers.SetSize(innerW)
	m.auth.SetSize(innerW)
	m.form.SetSize(innerW)

	bodyH := h - 9
	if bodyH < 3 {
		bodyH = 3
	}
	m.body.SetWidth(innerW)
	m.body.SetHeight(bodyH)
}

// Name returns the current request name.
func (m Model) Name() string {
	return m.name
}

// Method returns the current HTTP method.
func (m Model) Method() string {
	return m.method
}

// URL returns the current URL value.
func (m Model) URL() string {
	return m.url.Value()
}

// FocusURL focuses the URL input field for editing.
func (m *Model) FocusURL() {
	m.focusField = 1
	m.url.Focus()
	m.url.CursorEnd()
}

// AuthRef returns a pointer to the auth section.
func (m *Model) AuthRef() *AuthSection {
	return &m.auth
}

// Editing returns whether any child is in text editing mode.
func (m Model) Editing() bool {
	if m.focusField == 1 && m.url.Focused() {
		return true
	}
	if m.focusField == 2 {
		switch m.activeTab {
		case TabParams:
			return m.params.Editing()
		case TabHeaders:
			return m.headers.Editing()
		case TabAuth:
			return m.auth.Editing()
		case TabBody:
			if bodyTypes[m.bodyTypeIdx] == request.BodyForm {
				return m.form.Editing()
			}
			return m.body.Focused()
		}
	}
	return false
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+enter" {
			return m, func() tea.Msg { return msgs.SendRequestMsg{} }
		}
		if m.Editing() {
			return m.updateEditing(msg)
		}
		return m.updateNormal(msg)
	}

	var cmds []tea.Cmd
	if m.focusField == 1 {
		var cmd tea.Cmd
		m.url, cmd = m.url.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.focusField == 2 {
		cmds = append(cmds, m.updateTabContent(msg)...)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateNormal(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.focusField = (m.focusField + 1) % 3
		m.syncFocus()
	case "shift+tab":
		m.focusField = (m.focusField + 2) % 3
		m.syncFocus()
	case "enter":
		switch m.focusField {
		case 0:
			m.cycleMethod(1)
		case 1:
			m.url.Focus()
			return m, textinput.Blink
		case 2:
			return m.enterTabContent()
		}
	case " ":
		if m.focusField == 0 {
			m.cycleMethod(1)
		} else if m.focusField == 2 {
			cmds := m.updateTabContent(msg)
			return m, tea.Batch(cmds...)
		}
	case "down":
		// The panel-level tab key belongs to the app, so arrows move
		// between method, URL, and tab content.
		if m.focusField < 2 {
			m.focusField++
			m.syncFocus()
		} else {
			cmds := m.updateTabContent(msg)
			return m, tea.Batch(cmds...)
		}
	case "up":
		if m.focusField == 2 {
			cmds := m.updateTabContent(msg)
			return m, tea.Batch(cmds...)
		} else if m.focusField > 0 {
			m.focusField--
			m.syncFocus()
		}
	case "esc":
		if m.focusField > 0 {
			m.focusField--
			m.syncFocus()
		}
	case "m":
		m.cycleMethod(1)
	case "M":
		m.cycleMethod(-1)
	case "t":
		if m.activeTab == TabBody {
			m.bodyTypeIdx = (m.bodyTypeIdx + 1) % len(bodyTypes)
		}
	case "v":
		m.insecure = !m.insecure
	case "h", "left":
		if m.focusField == 2 && m.activeTab > TabParams {
			m.activeTab--
		}
	case "l", "right":
		if m.focusField == 2 && m.activeTab < TabBody {
			m.activeTab++
		}
	case "1":
		m.activeTab = TabParams
	case "2":
		m.activeTab = TabHeaders
	case "3":
		m.activeTab = TabAuth
	case "4":
		m.activeTab = TabBody
	default:
		if m.focusField == 2 {
			cmds := m.updateTabContent(msg)
			return m, tea.Batch(cmds...)
		}
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.focusField == 1 {
		if msg.String() == "esc" {
			m.url.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.url, cmd = m.url.Update(msg)
		return m, cmd
	}

	if m.focusField == 2 {
		switch m.activeTab {
		case TabParams:
			var cmd tea.Cmd
			m.params, cmd = m.params.Update(msg)
			return m, cmd
		case TabHeaders:
			var cmd tea.Cmd
			m.headers, cmd = m.headers.Update(msg)
			return m, cmd
		case TabAuth:
			var cmd tea.Cmd
			m.auth, cmd = m.auth.Update(msg)
			return m, cmd
		case TabBody:
			if bodyTypes[m.bodyTypeIdx] == request.BodyForm {
				var cmd tea.Cmd
				m.form, cmd = m.form.Update(msg)
				return m, cmd
			}
			if msg.String() == "esc" {
				m.body.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.body, cmd = m.body.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *Model) enterTabContent() (Model, tea.Cmd) {
	switch m.activeTab {
	case TabParams:
		var cmd tea.Cmd
		m.params, cmd = m.params.Update(tea.KeyMsg{Type: tea.KeyEnter})
		return *m, cmd
	case TabHeaders:
		var cmd tea.Cmd
		m.headers, cmd = m.headers.Update(tea.KeyMsg{Type: tea.KeyEnter})
		return *m, cmd
	case TabAuth:
		var cmd tea.Cmd
		m.auth, cmd = m.auth.Update(tea.KeyMsg{Type: tea.KeyEnter})
		return *m, cmd
	case TabBody:
		if bodyTypes[m.bodyTypeIdx] == request.BodyForm {
			var cmd tea.Cmd
			m.form, cmd = m.form.Update(tea.KeyMsg{Type: tea.KeyEnter})
			return *m, cmd
		}
		cmd := m.body.Focus()
		return *m, cmd
	}
	return *m, nil
}

func (m *Model) updateTabContent(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	switch m.activeTab {
	case TabParams:
		m.params, cmd = m.params.Update(msg)
	case TabHeaders:
		m.headers, cmd = m.headers.Update(msg)
	case TabAuth:
		m.auth, cmd = m.auth.Update(msg)
	case TabBody:
		if bodyTypes[m.bodyTypeIdx] == request.BodyForm {
			m.form, cmd = m.form.Update(msg)
		} else {
			m.body, cmd = m.body.Update(msg)
		}
	}
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	return cmds
}

func (m *Model) syncFocus() {
	m.url.Blur()
	m.body.Blur()
}

func (m *Model) cycleMethod(dir int) {
	n := len(request.Methods)
	m.methodIndex = (m.methodIndex + dir + n) % n
	m.method = request.Methods[m.methodIndex]
}

// BuildRequest constructs a request from the editor state.
func (m Model) BuildRequest() *request.Request {
	req := request.New(m.name, m.method, strings.TrimSpace(m.url.Value()))
	req.Params = m.params.Pairs()
	req.Headers = m.headers.Pairs()
	req.Auth = m.auth.BuildAuth()
	req.Timeout = m.timeout

	switch bodyTypes[m.bodyTypeIdx] {
	case request.BodyRaw, request.BodyJSON:
		content := strings.TrimSpace(m.body.Value())
		if content != "" {
			req.Body = &request.Body{
				Type:    bodyTypes[m.bodyTypeIdx],
				Content: content,
			}
		}
	case request.BodyForm:
		req.Body = &request.Body{
			Type: request.BodyForm,
			Form: m.form.Pairs(),
		}
	}

	if m.insecure {
		req.TLS = &request.TLS{InsecureSkipVerify: true}
	}

	return req
}

// LoadRequest populates the editor from a saved request.
func (m *Model) LoadRequest(req *request.Request) {
	m.name = req.Name
	m.method = req.Method
	for i, method := range request.Methods {
		if method == req.Method {
			m.methodIndex = i
			break
		}
	}

	m.url.SetValue(req.URL)
	m.timeout = req.Timeout

	if len(req.Params) > 0 {
		m.params.SetPairs(req.Params)
	} else {
		m.params.SetPairs(nil)
	}
	if len(req.Headers) > 0 {
		m.headers.SetPairs(req.Headers)
	} else {
		m.headers.SetPairs(nil)
	}

	m.bodyTypeIdx = 0
	m.body.SetValue("")
	m.form.SetPairs(nil)
	if req.Body != nil {
		for i, bt := range bodyTypes {
			if bt == req.Body.Type {
				m.bodyTypeIdx = i
				break
			}
		}
		if req.Body.Type == request.BodyForm {
			m.form.SetPairs(req.Body.Form)
		} else {
			m.body.SetValue(req.Body.Content)
		}
	}

	m.auth.LoadAuth(req.Auth)
	m.insecure = req.Insecure()
	m.focusField = 1
}

// Reset clears the editor back to an empty request.
func (m *Model) Reset() {
	m.LoadRequest(request.New("untitled", "GET", ""))
}

// View renders the editor panel.
func (m Model) View() string {
	var b strings.Builder

	// URL bar: [METHOD] url-input
	methodLabel := m.styles.MethodStyle(m.method).Render(m.method)
	if m.focusField == 0 {
		methodLabel = m.styles.Cursor.Render(" " + m.method + " ")
	}
	b.WriteString(methodLabel + " " + m.url.View())
	b.WriteString("\n\n")

	// Sub-tab bar
	var tabs []string
	for i, name := range subTabNames {
		if SubTab(i) == m.activeTab {
			tabs = append(tabs, m.styles.TabActive.Render(name))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(name))
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")

	switch m.activeTab {
	case TabParams:
		b.WriteString(m.params.View())
	case TabHeaders:
		b.WriteString(m.headers.View())
	case TabAuth:
		b.WriteString(m.auth.View())
	case TabBody:
		b.WriteString(m.bodyTypeLine())
		b.WriteString("\n")
		if bodyTypes[m.bodyTypeIdx] == request.BodyForm {
			b.WriteString(m.form.View())
		} else if bodyTypes[m.bodyTypeIdx] == request.BodyNone {
			b.WriteString(m.styles.Muted.Render("  No body"))
		} else {
			b.WriteString(m.body.View())
		}
	}

	// TLS indicator
	if m.insecure {
		b.WriteString("\n")
		b.WriteString(m.styles.Warning.Render("  ⚠ TLS verification disabled"))
	}

	var borderStyle lipgloss.Style
	if m.focused {
		borderStyle = m.styles.FocusedBorder
	} else {
		borderStyle = m.styles.UnfocusedBorder
	}
	borderStyle = borderStyle.Width(m.width - 2).Height(m.height - 2)

	return borderStyle.Render(b.String())
}

func (m Model) bodyTypeLine() string {
	var parts []string
	for i, bt := range bodyTypes {
		if i == m.bodyTypeIdx {
			parts = append(parts, m.styles.TabActive.Render(bt))
		} else {
			parts = append(parts, m.styles.TabInactive.Render(bt))
		}
	}
	return "  " + m.styles.Muted.Render("body: ") + strings.Join(parts, " ")
}
