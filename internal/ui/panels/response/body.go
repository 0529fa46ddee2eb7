package response

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tidwall/pretty"

	"github.com/tkaraca/restel/internal/ui/theme"
)

// BodyModel displays the response body with syntax highlighting and
// an optional in-body search.
type BodyModel struct {
	viewport  viewport.Model
	search    SearchBar
	styles    theme.Styles
	width     int
	height    int
	wrap      bool
	hasBody   bool
	searching bool
	raw       []byte
	contType  string
}

// NewBodyModel creates a body viewer.
func NewBodyModel(t theme.Theme, s theme.Styles) BodyModel {
	return BodyModel{
		viewport: viewport.New(0, 0),
		search:   NewSearchBar(t, s),
		styles:   s,
	}
}

// SetContent sets the body bytes and re-renders the highlighted view.
func (m *BodyModel) SetContent(body []byte, contentType string) {
	m.raw = body
	m.contType = contentType
	m.hasBody = len(body) > 0
	m.render()
}

// SetSize updates the viewport dimensions.
func (m *BodyModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.search.SetWidth(w)
	vpH := h
	if m.searching {
		vpH-- // search bar occupies the bottom line
	}
	m.viewport.Width = w
	m.viewport.Height = vpH
	if m.hasBody {
		m.render()
	}
}

// Searching reports whether the search bar is open.
func (m BodyModel) Searching() bool {
	return m.searching
}

// source returns the displayable body text, pretty-printing JSON.
func (m BodyModel) source() (string, string) {
	lexerName := lexerForContentType(m.contType)
	src := m.raw
	if lexerName == "json" {
		src = pretty.Pretty(src)
	}
	return string(src), lexerName
}

func (m *BodyModel) render() {
	if !m.hasBody {
		return
	}
	src, lexerName := m.source()
	m.viewport.SetContent(highlight(src, lexerName, m.width, m.wrap))
}

// renderSearch re-renders with search matches marked. Plain text is
// used so the match styling does not fight chroma's ANSI output.
func (m *BodyModel) renderSearch() {
	if !m.hasBody {
		return
	}
	src, _ := m.source()
	if m.wrap && m.width > 0 {
		src = lipgloss.NewStyle().Width(m.width).Render(src)
	}

	marked, matchLines := m.search.MarkMatches(src)
	m.search.SetMatches(matchLines)
	m.viewport.SetContent(marked)

	if len(matchLines) > 0 {
		m.viewport.SetYOffset(matchLines[0])
	}
}

func (m BodyModel) Init() tea.Cmd {
	return nil
}

func (m BodyModel) Update(msg tea.Msg) (BodyModel, tea.Cmd) {
	if m.searching && m.search.Focused() {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if !m.search.Active() {
			m.searching = false
			m.viewport.Height = m.height
			m.render()
		} else if m.search.Query() != "" {
			m.renderSearch()
		}
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "/", "ctrl+f":
			m.searching = true
			m.search.Open()
			m.viewport.Height = m.height - 1
			return m, nil
		case "w":
			m.wrap = !m.wrap
			m.render()
			return m, nil
		case "g":
			m.viewport.GotoTop()
			return m, nil
		case "G":
			m.viewport.GotoBottom()
			return m, nil
		case "n":
			if m.searching && m.search.Query() != "" {
				m.search.NextMatch()
				if line := m.search.CurrentMatchLine(); line >= 0 {
					m.viewport.SetYOffset(line)
				}
				return m, nil
			}
		case "N":
			if m.searching && m.search.Query() != "" {
				m.search.PrevMatch()
				if line := m.search.CurrentMatchLine(); line >= 0 {
					m.viewport.SetYOffset(line)
				}
				return m, nil
			}
		case "esc":
			if m.searching {
				m.searching = false
				m.search.Close()
				m.viewport.Height = m.height
				m.render()
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m BodyModel) View() string {
	if !m.hasBody {
		return m.styles.Muted.Render("Empty body")
	}
	if m.searching {
		return m.viewport.View() + "\n" + m.search.View()
	}
	return m.viewport.View()
}

// lexerForContentType maps a Content-Type value to a chroma lexer name.
func lexerForContentType(contentType string) string {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "json"):
		return "json"
	case strings.Contains(ct, "html"):
		return "html"
	case strings.Contains(ct, "xml"):
		return "xml"
	case strings.Contains(ct, "css"):
		return "css"
	case strings.Contains(ct, "javascript"):
		return "javascript"
	default:
		return "text"
	}
}

// highlight runs chroma over the source and returns ANSI-colored text.
func highlight(source, lexerName string, width int, wrap bool) string {
	lexer := lexers.Get(lexerName)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromastyles.Get("monokai")
	if style == nil {
		style = chromastyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return source
	}

	out := buf.String()
	if wrap && width > 0 {
		out = lipgloss.NewStyle().Width(width).Render(out)
	}
	return out
}
