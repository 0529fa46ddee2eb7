package response

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tkaraca/restel/internal/ui/theme"
)

// HeadersModel lists response headers sorted by name.
type HeadersModel struct {
	viewport   viewport.Model
	styles     theme.Styles
	hasHeaders bool
}

// NewHeadersModel creates a headers viewer.
func NewHeadersModel(s theme.Styles) HeadersModel {
	return HeadersModel{
		viewport: viewport.New(0, 0),
		styles:   s,
	}
}

// SetHeaders populates the header list.
func (m *HeadersModel) SetHeaders(headers http.Header) {
	m.hasHeaders = len(headers) > 0
	if !m.hasHeaders {
		return
	}

	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s%s%s\n",
			m.styles.KVKey.Render(k),
			m.styles.KVSeparator.Render(" : "),
			m.styles.KVValue.Render(strings.Join(headers[k], ", ")),
		)
	}

	m.viewport.SetContent(strings.TrimRight(b.String(), "\n"))
}

// SetSize updates the viewport dimensions.
func (m *HeadersModel) SetSize(w, h int) {
	m.viewport.Width = w
	m.viewport.Height = h
}

func (m HeadersModel) Init() tea.Cmd {
	return nil
}

func (m HeadersModel) Update(msg tea.Msg) (HeadersModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m HeadersModel) View() string {
	if !m.hasHeaders {
		return m.styles.Muted.Render("No headers")
	}
	return m.viewport.View()
}
