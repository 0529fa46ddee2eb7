package response

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tkaraca/restel/internal/ui/theme"
)

// SearchBar is the case-insensitive in-body search line.
type SearchBar struct {
	input     textinput.Model
	active    bool
	query     string
	matches   []int // line indices containing a match
	current   int   // index into matches
	styles    theme.Styles
	markStyle lipgloss.Style
	width     int
}

// NewSearchBar creates a search bar themed for match marking.
func NewSearchBar(t theme.Theme, s theme.Styles) SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search..."
	ti.CharLimit = 256
	ti.Prompt = "/ "
	return SearchBar{
		input:  ti,
		styles: s,
		markStyle: lipgloss.NewStyle().
			Background(t.Yellow).
			Foreground(t.Bg).
			Bold(true),
	}
}

// Active reports whether the search bar is visible.
func (m SearchBar) Active() bool {
	return m.active
}

// Focused reports whether the input is capturing keystrokes.
func (m SearchBar) Focused() bool {
	return m.input.Focused()
}

// Query returns the current query string.
func (m SearchBar) Query() string {
	return m.query
}

// Open shows the bar with an empty query and focuses the input.
func (m *SearchBar) Open() {
	m.active = true
	m.input.SetValue("")
	m.input.Focus()
	m.query = ""
	m.matches = nil
	m.current = 0
}

// Close hides the bar and clears its state.
func (m *SearchBar) Close() {
	m.active = false
	m.input.Blur()
	m.query = ""
	m.matches = nil
	m.current = 0
}

// SetWidth sets the bar width.
func (m *SearchBar) SetWidth(w int) {
	m.width = w
	m.input.Width = w - 20
	if m.input.Width < 10 {
		m.input.Width = 10
	}
}

func (m SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd) {
	if !m.active {
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.Close()
			return m, nil
		case "enter":
			m.query = m.input.Value()
			m.input.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.query = m.input.Value()
	return m, cmd
}

// SetMatches records the line positions of the current matches.
func (m *SearchBar) SetMatches(matches []int) {
	m.matches = matches
	if m.current >= len(matches) {
		m.current = 0
	}
}

// NextMatch advances to the next match, wrapping.
func (m *SearchBar) NextMatch() {
	if len(m.matches) > 0 {
		m.current = (m.current + 1) % len(m.matches)
	}
}

// PrevMatch moves to the previous match, wrapping.
func (m *SearchBar) PrevMatch() {
	if len(m.matches) > 0 {
		m.current = (m.current - 1 + len(m.matches)) % len(m.matches)
	}
}

// CurrentMatchLine returns the line of the current match, or -1.
func (m SearchBar) CurrentMatchLine() int {
	if len(m.matches) > 0 && m.current < len(m.matches) {
		return m.matches[m.current]
	}
	return -1
}

func (m SearchBar) View() string {
	if !m.active {
		return ""
	}

	var info string
	if m.query != "" {
		if len(m.matches) == 0 {
			info = m.styles.Error.Render(" No matches")
		} else {
			info = m.styles.Muted.Render(fmt.Sprintf(" %d/%d", m.current+1, len(m.matches)))
		}
	}

	return lipgloss.NewStyle().Width(m.width).Render(m.input.View() + info)
}

// MarkMatches styles every occurrence of the query in content and
// returns the marked text plus the matching line indices. Matching is
// case-insensitive; the original casing is preserved in the output.
func (m SearchBar) MarkMatches(content string) (string, []int) {
	query := m.query
	if query == "" {
		return content, nil
	}

	lines := strings.Split(content, "\n")
	lowerQuery := strings.ToLower(query)
	var matchLines []int

	for i, line := range lines {
		lowerLine := strings.ToLower(line)
		if !strings.Contains(lowerLine, lowerQuery) {
			continue
		}
		matchLines = append(matchLines, i)

		var b strings.Builder
		rest, lowerRest := line, lowerLine
		for {
			idx := strings.Index(lowerRest, lowerQuery)
			if idx < 0 {
				b.WriteString(rest)
				break
			}
			b.WriteString(rest[:idx])
			b.WriteString(m.markStyle.Render(rest[idx : idx+len(query)]))
			rest = rest[idx+len(query):]
			lowerRest = lowerRest[idx+len(lowerQuery):]
		}
		lines[i] = b.String()
	}

	return strings.Join(lines, "\n"), matchLines
}
