package response

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/tkaraca/restel/internal/client"
	"github.com/tkaraca/restel/internal/ui/theme"
)

const timingBarWidth = 24

// TimingModel shows the per-phase timing breakdown and response metadata.
type TimingModel struct {
	styles      theme.Styles
	width       int
	height      int
	hasResponse bool
	content     string
}

// NewTimingModel creates a timing display.
func NewTimingModel(s theme.Styles) TimingModel {
	return TimingModel{styles: s}
}

// SetResponse populates the breakdown from a response.
func (m *TimingModel) SetResponse(resp *client.Response) {
	if resp == nil {
		m.hasResponse = false
		return
	}
	m.hasResponse = true

	var b strings.Builder

	phase := func(label string, d time.Duration) {
		fmt.Fprintf(&b, "%s %s %s\n",
			m.styles.KVKey.Width(14).Render(label),
			m.styles.Success.Render(phaseBar(d, resp.Timing.Total)),
			m.styles.Normal.Render(formatPhase(d)),
		)
	}

	phase("DNS Lookup", resp.Timing.DNSLookup)
	phase("Connect", resp.Timing.Connect)
	phase("TLS Handshake", resp.Timing.TLSHandshake)
	phase("First Byte", resp.Timing.TTFB)
	phase("Transfer", resp.Timing.Transfer)
	b.WriteString("\n")

	row := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n",
			m.styles.KVKey.Width(14).Render(label),
			m.styles.Normal.Render(value),
		)
	}

	row("Total", formatPhase(resp.Timing.Total))
	row("Size", humanize.IBytes(uint64(resp.Size)))
	row("Protocol", resp.Proto)
	tlsStatus := "No"
	if resp.TLS {
		tlsStatus = "Yes"
	}
	row("TLS", tlsStatus)

	m.content = strings.TrimRight(b.String(), "\n")
}

// SetSize updates the dimensions.
func (m *TimingModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m TimingModel) Init() tea.Cmd {
	return nil
}

func (m TimingModel) Update(msg tea.Msg) (TimingModel, tea.Cmd) {
	return m, nil
}

func (m TimingModel) View() string {
	if !m.hasResponse {
		return m.styles.Muted.Render("No timing data")
	}
	return m.content
}

// phaseBar renders a proportional bar for one phase of the total.
func phaseBar(d, total time.Duration) string {
	filled := 0
	if total > 0 && d > 0 {
		filled = int(float64(timingBarWidth) * float64(d) / float64(total))
		if filled == 0 {
			filled = 1
		}
		if filled > timingBarWidth {
			filled = timingBarWidth
		}
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", timingBarWidth-filled)
}

// formatPhase renders a duration at a readable precision.
func formatPhase(d time.Duration) string {
	switch {
	case d == 0:
		return "-"
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}
