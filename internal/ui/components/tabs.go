package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tkaraca/restel/internal/ui/theme"
)

// SubTabs renders a horizontal strip of sub-tab labels inside a panel,
// such as Params/Headers/Auth/Body in the editor.
type SubTabs struct {
	labels []string
	active int
	styles theme.Styles
}

// NewSubTabs creates a sub-tab strip with the given labels.
func NewSubTabs(styles theme.Styles, labels ...string) SubTabs {
	return SubTabs{
		labels: labels,
		styles: styles,
	}
}

// Active returns the active tab index.
func (m SubTabs) Active() int {
	return m.active
}

// SetActive sets the active tab index. Out-of-range values are ignored.
func (m *SubTabs) SetActive(index int) {
	if index >= 0 && index < len(m.labels) {
		m.active = index
	}
}

// Next advances to the next tab, wrapping around.
func (m *SubTabs) Next() {
	if len(m.labels) > 0 {
		m.active = (m.active + 1) % len(m.labels)
	}
}

// Prev moves to the previous tab, wrapping around.
func (m *SubTabs) Prev() {
	if len(m.labels) > 0 {
		m.active = (m.active - 1 + len(m.labels)) % len(m.labels)
	}
}

// Len returns the number of tabs.
func (m SubTabs) Len() int {
	return len(m.labels)
}

// View renders the tab strip.
func (m SubTabs) View() string {
	if len(m.labels) == 0 {
		return ""
	}

	sep := m.styles.KVSeparator.Render("│")

	parts := make([]string, len(m.labels))
	for i, label := range m.labels {
		if i == m.active {
			parts[i] = m.styles.TabActive.Render(label)
		} else {
			parts[i] = m.styles.TabInactive.Render(label)
		}
	}

	return strings.Join(parts, sep)
}

// ViewWidth renders the tab strip padded to the given width.
func (m SubTabs) ViewWidth(w int) string {
	v := m.View()
	if lipgloss.Width(v) < w {
		v += strings.Repeat(" ", w-lipgloss.Width(v))
	}
	return v
}
