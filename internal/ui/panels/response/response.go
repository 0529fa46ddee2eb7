// Package response implements the response panel: body, headers, a
// navigable JSON tree, and timing, behind a sub-tab strip.
package response

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tkaraca/restel/internal/client"
	"github.com/tkaraca/restel/internal/ui/components"
	"github.com/tkaraca/restel/internal/ui/theme"
)

const (
	tabBody = iota
	tabHeaders
	tabTree
	tabTiming
)

// Model is the response panel container.
type Model struct {
	body    BodyModel
	headers HeadersModel
	tree    TreeModel
	timing  TimingModel
	tabs    components.SubTabs
	spinner spinner.Model

	styles  theme.Styles
	th      theme.Theme
	focused bool
	loading bool
	hasResp bool
	status  string
	code    int
	width   int
	height  int
}

// New creates a response panel.
func New(t theme.Theme, s theme.Styles) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(t.Purple)

	return Model{
		body:    NewBodyModel(t, s),
		headers: NewHeadersModel(s),
		tree:    NewTreeModel(s),
		timing:  NewTimingModel(s),
		tabs:    components.NewSubTabs(s, "Body", "Headers", "Tree", "Timing"),
		spinner: sp,
		styles:  s,
		th:      t,
	}
}

// SetResponse populates every sub-view. A nil response clears the panel.
func (m *Model) SetResponse(resp *client.Response) {
	m.loading = false
	if resp == nil {
		m.hasResp = false
		return
	}
	m.hasResp = true
	m.code = resp.StatusCode
	m.status = resp.Status

	m.body.SetContent(resp.Body, resp.ContentType)
	m.headers.SetHeaders(resp.Headers)
	m.timing.SetResponse(resp)
	if resp.IsJSON() {
		m.tree.SetBody(resp.Body)
	} else {
		m.tree.Clear()
	}
}

// SetLoading toggles the in-flight spinner state.
func (m *Model) SetLoading(loading bool) {
	m.loading = loading
}

// SetFocused sets whether this panel has focus.
func (m *Model) SetFocused(focused bool) {
	m.focused = focused
}

// SetSize updates the panel dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h

	// Inner area: border takes 2, tab strip and status line take 1 each.
	innerW := max(w-2, 0)
	innerH := max(h-4, 0)

	m.body.SetSize(innerW, innerH)
	m.headers.SetSize(innerW, innerH)
	m.tree.SetSize(innerW, innerH)
	m.timing.SetSize(innerW, innerH)
}

// Searching reports whether the body search input is capturing keys.
func (m Model) Searching() bool {
	return m.tabs.Active() == tabBody && m.body.Searching()
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.Searching() {
			switch msg.String() {
			case "tab":
				m.tabs.Next()
				return m, nil
			case "shift+tab":
				m.tabs.Prev()
				return m, nil
			case "1", "2", "3", "4":
				m.tabs.SetActive(int(msg.String()[0] - '1'))
				return m, nil
			}
		}
	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	switch m.tabs.Active() {
	case tabBody:
		m.body, cmd = m.body.Update(msg)
	case tabHeaders:
		m.headers, cmd = m.headers.Update(msg)
	case tabTree:
		m.tree, cmd = m.tree.Update(msg)
	case tabTiming:
		m.timing, cmd = m.timing.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	border := m.styles.UnfocusedBorder
	if m.focused {
		border = m.styles.FocusedBorder
	}

	innerW := max(m.width-2, 0)
	innerH := max(m.height-2, 0)

	var content string
	switch {
	case m.loading:
		msg := fmt.Sprintf("%s Sending request...", m.spinner.View())
		content = lipgloss.Place(innerW, innerH, lipgloss.Center, lipgloss.Center, msg)
	case !m.hasResp:
		msg := m.styles.Muted.Render("Send a request to see the response")
		content = lipgloss.Place(innerW, innerH, lipgloss.Center, lipgloss.Center, msg)
	default:
		content = m.renderResponse(innerW, innerH)
	}

	return border.Width(innerW).Height(innerH).Render(content)
}

func (m Model) renderResponse(w, h int) string {
	tabs := m.tabs.ViewWidth(w)

	statusStyle := lipgloss.NewStyle().Foreground(m.th.StatusColor(m.code)).Bold(true)
	status := statusStyle.Width(w).Render(m.status)

	contentH := max(h-2, 0)

	var body string
	switch m.tabs.Active() {
	case tabBody:
		body = m.body.View()
	case tabHeaders:
		body = m.headers.View()
	case tabTree:
		body = m.tree.View()
	case tabTiming:
		body = m.timing.View()
	}
	body = lipgloss.NewStyle().Width(w).Height(contentH).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, tabs, status, body)
}
