package response

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tkaraca/restel/internal/jsontree"
	"github.com/tkaraca/restel/internal/ui/theme"
)

// TreeModel renders a JSON response body as a collapsible tree.
type TreeModel struct {
	styles   theme.Styles
	root     *jsontree.Node
	expanded map[string]bool
	flat     []jsontree.FlatNode
	cursor   int
	offset   int
	width    int
	height   int
	parseErr bool
}

// NewTreeModel creates an empty tree viewer.
func NewTreeModel(s theme.Styles) TreeModel {
	return TreeModel{styles: s}
}

// SetBody parses the body as JSON. The root starts expanded.
func (m *TreeModel) SetBody(body []byte) {
	root, err := jsontree.Parse(body)
	if err != nil {
		m.Clear()
		m.parseErr = true
		return
	}
	m.root = root
	m.parseErr = false
	m.expanded = map[string]bool{"$": true}
	m.cursor = 0
	m.offset = 0
	m.reflatten()
}

// Clear drops the current tree.
func (m *TreeModel) Clear() {
	m.root = nil
	m.flat = nil
	m.expanded = nil
	m.cursor = 0
	m.offset = 0
	m.parseErr = false
}

// SetSize updates the dimensions.
func (m *TreeModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.clampScroll()
}

func (m *TreeModel) reflatten() {
	if m.root == nil {
		m.flat = nil
		return
	}
	m.flat = jsontree.Flatten(m.root, m.expanded)
	if m.cursor >= len(m.flat) {
		m.cursor = len(m.flat) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampScroll()
}

func (m *TreeModel) clampScroll() {
	if m.height <= 0 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// allContainerPaths collects the path of every expandable node.
func allContainerPaths(n *jsontree.Node, path string, out map[string]bool) {
	if !n.IsContainer() {
		return
	}
	out[path] = true
	for _, c := range n.Children {
		allContainerPaths(c, path+"."+c.Key, out)
	}
}

func (m TreeModel) Init() tea.Cmd {
	return nil
}

func (m TreeModel) Update(msg tea.Msg) (TreeModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.flat) == 0 {
		return m, nil
	}

	switch key.String() {
	case "j", "down":
		if m.cursor < len(m.flat)-1 {
			m.cursor++
			m.clampScroll()
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
			m.clampScroll()
		}
	case "g":
		m.cursor = 0
		m.offset = 0
	case "G":
		m.cursor = len(m.flat) - 1
		m.clampScroll()
	case "enter":
		cur := m.flat[m.cursor]
		if cur.Node.IsContainer() {
			m.expanded[cur.Path] = !m.expanded[cur.Path]
			m.reflatten()
		}
	case "l", "right":
		cur := m.flat[m.cursor]
		if cur.Node.IsContainer() && !cur.Expanded {
			m.expanded[cur.Path] = true
			m.reflatten()
		}
	case "h", "left":
		cur := m.flat[m.cursor]
		if cur.Node.IsContainer() && cur.Expanded {
			m.expanded[cur.Path] = false
			m.reflatten()
		} else {
			// Jump to the enclosing container.
			for i := m.cursor - 1; i >= 0; i-- {
				if m.flat[i].Depth == cur.Depth-1 {
					m.cursor = i
					m.clampScroll()
					break
				}
			}
		}
	case "e":
		paths := map[string]bool{}
		allContainerPaths(m.root, "$", paths)
		m.expanded = paths
		m.reflatten()
	case "c":
		m.expanded = map[string]bool{"$": true}
		m.reflatten()
	}

	return m, nil
}

func (m TreeModel) View() string {
	if m.parseErr {
		return m.styles.Error.Render("Body is not valid JSON")
	}
	if len(m.flat) == 0 {
		return m.styles.Muted.Render("No JSON body")
	}

	end := m.offset + m.height
	if m.height <= 0 || end > len(m.flat) {
		end = len(m.flat)
	}

	var b strings.Builder
	for i := m.offset; i < end; i++ {
		f := m.flat[i]

		marker := "  "
		if f.Node.IsContainer() {
			if f.Expanded {
				marker = "▾ "
			} else {
				marker = "▸ "
			}
		}

		style := m.styles.TreeLeaf
		if f.Node.IsContainer() {
			style = m.styles.TreeContainer
		}

		line := strings.Repeat("  ", f.Depth) + marker + f.Node.Label()
		if m.width > 0 && lipgloss.Width(line) > m.width {
			r := []rune(line)
			if len(r) > m.width {
				line = string(r[:m.width])
			}
		}

		if i == m.cursor {
			b.WriteString(m.styles.Cursor.Render(line))
		} else {
			b.WriteString(style.Render(line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
