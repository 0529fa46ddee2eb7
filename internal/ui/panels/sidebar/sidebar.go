// Package sidebar lists saved request files and recent history.
package sidebar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/tkaraca/restel/internal/core/history"
	"github.com/tkaraca/restel/internal/core/request"
	"github.com/tkaraca/restel/internal/ui/msgs"
	"github.com/tkaraca/restel/internal/ui/theme"
)

type rowKind int

const (
	rowFile rowKind = iota
	rowHistory
)

// row is one selectable line. idx points into files or entries
// depending on kind.
type row struct {
	kind rowKind
	idx  int
}

// Model is the sidebar panel.
type Model struct {
	files   []request.FileEntry
	entries []history.Entry
	visible []row
	cursor  int

	width   int
	height  int
	focused bool

	filtering   bool
	filterInput textinput.Model

	styles theme.Styles
}

// New creates a sidebar.
func New(s theme.Styles) Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.CharLimit = 128

	return Model{
		styles:      s,
		filterInput: ti,
	}
}

// SetFiles replaces the request file list.
func (m *Model) SetFiles(files []request.FileEntry) {
	m.files = files
	m.applyFilter()
}

// SetHistory replaces the history entries.
func (m *Model) SetHistory(entries []history.Entry) {
	m.entries = entries
	m.applyFilter()
}

// SetSize sets the panel dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetFocused sets whether this panel has focus.
func (m *Model) SetFocused(f bool) {
	m.focused = f
}

// Filtering reports whether the filter input is capturing keys.
func (m Model) Filtering() bool {
	return m.filtering
}

// Selected returns the file path under the cursor, or "" when the
// cursor is not on a file row.
func (m Model) Selected() string {
	if m.cursor < len(m.visible) {
		r := m.visible[m.cursor]
		if r.kind == rowFile {
			return m.files[r.idx].Path
		}
	}
	return ""
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.filtering {
		return m.updateFilter(msg)
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(key)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		m.filtering = true
		m.filterInput.Focus()
		return m, textinput.Blink
	}

	if len(m.visible) == 0 {
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g":
		m.cursor = 0
	case "G":
		m.cursor = len(m.visible) - 1
	case "enter", "l":
		r := m.visible[m.cursor]
		switch r.kind {
		case rowFile:
			path := m.files[r.idx].Path
			return m, func() tea.Msg {
				return msgs.RequestSelectedMsg{Path: path}
			}
		case rowHistory:
			id := m.entries[r.idx].ID
			return m, func() tea.Msg {
				return msgs.HistorySelectedMsg{ID: id}
			}
		}
	}

	return m, nil
}

func (m Model) updateFilter(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", "esc":
			m.filtering = false
			m.filterInput.Blur()
			if key.String() == "esc" {
				m.filterInput.SetValue("")
				m.applyFilter()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.applyFilter()
	return m, cmd
}

// applyFilter rebuilds the visible rows, fuzzy-matching the query
// against file names and history URLs.
func (m *Model) applyFilter() {
	query := m.filterInput.Value()
	m.visible = m.visible[:0]

	if query == "" {
		for i := range m.files {
			m.visible = append(m.visible, row{kind: rowFile, idx: i})
		}
		for i := range m.entries {
			m.visible = append(m.visible, row{kind: rowHistory, idx: i})
		}
	} else {
		names := make([]string, len(m.files))
		for i, f := range m.files {
			names[i] = f.Name
		}
		for _, match := range fuzzy.Find(query, names) {
			m.visible = append(m.visible, row{kind: rowFile, idx: match.Index})
		}

		urls := make([]string, len(m.entries))
		for i, e := range m.entries {
			urls[i] = e.URL
		}
		for _, match := range fuzzy.Find(query, urls) {
			m.visible = append(m.visible, row{kind: rowHistory, idx: match.Index})
		}
	}

	if m.cursor >= len(m.visible) {
		m.cursor = max(0, len(m.visible)-1)
	}
}

func (m Model) View() string {
	border := m.styles.UnfocusedBorder
	if m.focused {
		border = m.styles.FocusedBorder
	}

	innerW := max(m.width-2, 1)
	innerH := max(m.height-2, 1)

	var lines []string
	lines = append(lines, m.styles.Title.Render("Requests"))

	fileRows, histRows := 0, 0
	for vi, r := range m.visible {
		if r.kind != rowFile {
			continue
		}
		lines = append(lines, m.renderFile(m.files[r.idx], vi == m.cursor, innerW))
		fileRows++
	}
	if fileRows == 0 {
		lines = append(lines, m.styles.Muted.Render("  No requests"))
	}

	lines = append(lines, "", m.styles.Title.Render("History"))
	for vi, r := range m.visible {
		if r.kind != rowHistory {
			continue
		}
		lines = append(lines, m.renderEntry(m.entries[r.idx], vi == m.cursor, innerW))
		histRows++
	}
	if histRows == 0 {
		lines = append(lines, m.styles.Muted.Render("  No history yet"))
	}

	content := strings.Join(lines, "\n")
	if m.filtering {
		content = fitHeight(content, innerH-1) + "\n" + m.filterInput.View()
	} else {
		content = fitHeight(content, innerH)
	}

	return border.Width(innerW).Height(innerH).Render(content)
}

func (m Model) renderFile(f request.FileEntry, isCursor bool, maxWidth int) string {
	var line string
	if f.LoadErr != nil {
		line = m.styles.Error.Render("!      ") + m.styles.Muted.Render(f.Name)
	} else {
		badge := m.styles.MethodStyle(f.Method).Render(padMethod(f.Method))
		line = badge + " " + m.styles.Normal.Render(f.Name)
	}
	if isCursor {
		return m.styles.Cursor.Width(maxWidth).Render(truncateToWidth(line, maxWidth))
	}
	return line
}

func (m Model) renderEntry(e history.Entry, isCursor bool, maxWidth int) string {
	badge := m.styles.MethodStyle(e.Method).Render(padMethod(e.Method))
	status := m.styles.Muted.Render(fmt.Sprintf("%d ", e.StatusCode))
	line := badge + " " + status + m.styles.Subtitle.Render(e.URL)
	if isCursor {
		return m.styles.Cursor.Width(maxWidth).Render(truncateToWidth(line, maxWidth))
	}
	return truncateToWidth(line, maxWidth)
}

// padMethod pads an HTTP method to 6 chars.
func padMethod(method string) string {
	if len(method) >= 6 {
		return method[:6]
	}
	return method + strings.Repeat(" ", 6-len(method))
}

// fitHeight truncates or pads content to the given height.
func fitHeight(content string, h int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// truncateToWidth drops trailing runes until the line fits.
func truncateToWidth(s string, w int) string {
	if lipgloss.Width(s) <= w {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > w {
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}
