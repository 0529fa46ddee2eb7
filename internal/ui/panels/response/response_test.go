package response

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tkaraca/restel/internal/client"
	"github.com/tkaraca/restel/internal/ui/theme"
)

func newModelForTest() Model {
	th := theme.Default()
	m := New(th, theme.NewStyles(th))
	m.SetSize(100, 24)
	return m
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func sampleResponse() *client.Response {
	return &client.Response{
		StatusCode:  200,
		Status:      "200 OK",
		Body:        []byte(`{"ok":true,"items":[1,2]}`),
		ContentType: "application/json",
		Headers:     http.Header{"Content-Type": {"application/json"}},
		Duration:    120 * time.Millisecond,
		Size:        25,
		Proto:       "HTTP/1.1",
		TLS:         true,
		Timing: client.Timing{
			DNSLookup:    10 * time.Millisecond,
			Connect:      20 * time.Millisecond,
			TLSHandshake: 30 * time.Millisecond,
			TTFB:         40 * time.Millisecond,
			Transfer:     5 * time.Millisecond,
			Total:        120 * time.Millisecond,
		},
	}
}

func TestModel_SetResponseAndTabs(t *testing.T) {
	m := newModelForTest()
	m.SetResponse(sampleResponse())

	if !m.hasResp {
		t.Fatal("expected hasResp true")
	}
	if m.code != 200 || m.status != "200 OK" {
		t.Fatalf("unexpected status state code=%d status=%q", m.code, m.status)
	}

	m, _ = m.Update(runeKey('2'))
	if m.tabs.Active() != tabHeaders {
		t.Fatalf("active tab = %d, want headers", m.tabs.Active())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.tabs.Active() != tabTree {
		t.Fatalf("active tab after tab = %d, want tree", m.tabs.Active())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.tabs.Active() != tabHeaders {
		t.Fatalf("active tab after shift+tab = %d, want headers", m.tabs.Active())
	}

	m.SetResponse(nil)
	if m.hasResp {
		t.Fatal("expected hasResp false after nil response")
	}
}

func TestModel_ViewStates(t *testing.T) {
	m := newModelForTest()
	if got := m.View(); !strings.Contains(got, "Send a request") {
		t.Fatalf("empty view missing prompt: %q", got)
	}

	m.SetLoading(true)
	m, cmd := m.Update(spinner.TickMsg{})
	if cmd == nil {
		t.Fatal("expected spinner tick command while loading")
	}
	if got := m.View(); !strings.Contains(got, "Sending request") {
		t.Fatalf("loading view missing text: %q", got)
	}

	m.SetResponse(sampleResponse())
	if got := m.View(); !strings.Contains(got, "200 OK") {
		t.Fatalf("response view missing status: %q", got)
	}
}

func TestBodyModel_SearchFlow(t *testing.T) {
	th := theme.Default()
	styles := theme.NewStyles(th)

	body := NewBodyModel(th, styles)
	body.SetSize(40, 8)
	body.SetContent([]byte("line1\nline2\nline1"), "text/plain")
	if !strings.Contains(body.View(), "line1") {
		t.Fatalf("body view missing content: %q", body.View())
	}

	body, _ = body.Update(runeKey('/'))
	if !body.Searching() {
		t.Fatal("expected searching mode after '/'")
	}

	body.search.SetMatches([]int{0, 2})
	body.search.query = "line1"
	body.search.input.Blur()
	body, _ = body.Update(runeKey('n'))
	if body.search.current != 1 {
		t.Fatalf("current match = %d, want 1", body.search.current)
	}
	body, _ = body.Update(runeKey('N'))
	if body.search.current != 0 {
		t.Fatalf("current match after N = %d, want 0", body.search.current)
	}

	body, _ = body.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if body.Searching() {
		t.Fatal("expected search to close on esc")
	}
}

func TestSearchBar_MarkMatches(t *testing.T) {
	th := theme.Default()
	sb := NewSearchBar(th, theme.NewStyles(th))
	sb.query = "abc"

	_, matches := sb.MarkMatches("Abc\nnope\nxxabcxx")
	if len(matches) != 2 {
		t.Fatalf("match lines = %v, want 2 entries", matches)
	}
	if matches[0] != 0 || matches[1] != 2 {
		t.Fatalf("unexpected match lines: %v", matches)
	}
}

func TestLexerForContentType(t *testing.T) {
	cases := map[string]string{
		"application/json; charset=utf-8": "json",
		"text/html":                       "html",
		"application/xml":                 "xml",
		"text/javascript":                 "javascript",
		"text/unknown":                    "text",
	}
	for ct, want := range cases {
		if got := lexerForContentType(ct); got != want {
			t.Errorf("lexerForContentType(%q) = %q, want %q", ct, got, want)
		}
	}
}

func TestHeadersModel_Sorted(t *testing.T) {
	styles := theme.NewStyles(theme.Default())
	headers := NewHeadersModel(styles)
	headers.SetSize(60, 8)
	headers.SetHeaders(http.Header{"X-Beta": {"2"}, "X-Alpha": {"1"}})

	view := headers.View()
	if !strings.Contains(view, "X-Alpha") || !strings.Contains(view, "X-Beta") {
		t.Fatalf("headers view missing entries: %q", view)
	}
	if strings.Index(view, "X-Alpha") > strings.Index(view, "X-Beta") {
		t.Fatal("headers should be sorted by name")
	}
}

func TestTreeModel_NavigateAndToggle(t *testing.T) {
	styles := theme.NewStyles(theme.Default())
	tree := NewTreeModel(styles)
	tree.SetSize(60, 12)
	tree.SetBody([]byte(`{"user":{"name":"ada"},"tags":["a","b"]}`))

	// Root expanded: root, tags, user.
	if len(tree.flat) != 3 {
		t.Fatalf("flat rows = %d, want 3", len(tree.flat))
	}

	tree, _ = tree.Update(runeKey('j'))
	tree, _ = tree.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if len(tree.flat) != 5 {
		t.Fatalf("flat rows after expanding tags = %d, want 5", len(tree.flat))
	}

	tree, _ = tree.Update(runeKey('h'))
	if len(tree.flat) != 3 {
		t.Fatalf("flat rows after collapse = %d, want 3", len(tree.flat))
	}

	tree, _ = tree.Update(runeKey('e'))
	if len(tree.flat) != 6 {
		t.Fatalf("flat rows after expand-all = %d, want 6", len(tree.flat))
	}
	tree, _ = tree.Update(runeKey('c'))
	if len(tree.flat) != 3 {
		t.Fatalf("flat rows after collapse-all = %d, want 3", len(tree.flat))
	}

	if !strings.Contains(tree.View(), "root") {
		t.Fatalf("tree view missing root: %q", tree.View())
	}
}

func TestTreeModel_InvalidJSON(t *testing.T) {
	styles := theme.NewStyles(theme.Default())
	tree := NewTreeModel(styles)
	tree.SetSize(60, 12)
	tree.SetBody([]byte("not json"))

	if !strings.Contains(tree.View(), "not valid JSON") {
		t.Fatalf("tree view should report parse failure: %q", tree.View())
	}
}

func TestTimingModel_Breakdown(t *testing.T) {
	styles := theme.NewStyles(theme.Default())
	timing := NewTimingModel(styles)
	timing.SetSize(100, 12)
	timing.SetResponse(sampleResponse())

	view := timing.View()
	for _, want := range []string{"DNS Lookup", "First Byte", "Transfer", "HTTP/1.1"} {
		if !strings.Contains(view, want) {
			t.Errorf("timing view missing %q", want)
		}
	}
}

func TestFormatPhase(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "-"},
		{999 * time.Microsecond, "999µs"},
		{250 * time.Millisecond, "250ms"},
		{1500 * time.Millisecond, "1.50s"},
	}
	for _, c := range cases {
		if got := formatPhase(c.d); got != c.want {
			t.Errorf("formatPhase(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}

func TestPhaseBar_Proportions(t *testing.T) {
	full := phaseBar(100*time.Millisecond, 100*time.Millisecond)
	if strings.Contains(full, "░") {
		t.Fatalf("full bar should have no empty cells: %q", full)
	}
	empty := phaseBar(0, 100*time.Millisecond)
	if strings.Contains(empty, "█") {
		t.Fatalf("zero bar should have no filled cells: %q", empty)
	}
	tiny := phaseBar(time.Microsecond, time.Hour)
	if !strings.Contains(tiny, "█") {
		t.Fatal("non-zero phase should render at least one filled cell")
	}
}
