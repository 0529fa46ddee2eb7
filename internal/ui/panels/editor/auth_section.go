package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tkaraca/restel/internal/core/request"
	"github.com/tkaraca/restel/internal/ui/msgs"
	"github.com/tkaraca/restel/internal/ui/theme"
)

var authTypes = []string{
	request.AuthNone,
	request.AuthBasic,
	request.AuthBearer,
	request.AuthOAuth1,
	request.AuthOAuth2,
}

var oauth1SigMethods = []string{"HMAC-SHA1", "PLAINTEXT"}
var oauth2GrantTypes = []string{"client_credentials", "password"}

// AuthSection manages auth configuration with a type selector and
// per-type field inputs.
type AuthSection struct {
	authType  string
	typeIndex int
	cursor    int // 0=type, 1+=fields
	editing   bool

	// Basic
	username textinput.Model
	password textinput.Model

	// Bearer
	token textinput.Model

	// OAuth1
	consumerKey    textinput.Model
	consumerSecret textinput.Model
	oauth1Token    textinput.Model
	oauth1Secret   textinput.Model
	sigMethodIdx   int

	// OAuth2
	grantIdx     int
	tokenURL     textinput.Model
	clientID     textinput.Model
	clientSecret textinput.Model
	scope        textinput.Model
	o2Username   textinput.Model
	o2Password   textinput.Model
	accessToken  string

	width  int
	styles theme.Styles
}

// NewAuthSection creates a new auth section.
func NewAuthSection(styles theme.Styles) AuthSection {
	mkInput := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 512
		ti.Width = 40
		return ti
	}

	return AuthSection{
		authType:       request.AuthNone,
		username:       mkInput("Username"),
		password:       mkInput("Password"),
		token:          mkInput("Bearer token"),
		consumerKey:    mkInput("Consumer key"),
		consumerSecret: mkInput("Consumer secret"),
		oauth1Token:    mkInput("Token"),
		oauth1Secret:   mkInput("Token secret"),
		tokenURL:       mkInput("Token URL"),
		clientID:       mkInput("Client ID"),
		clientSecret:   mkInput("Client secret"),
		scope:          mkInput("Scope (optional)"),
		o2Username:     mkInput("Username (password grant)"),
		o2Password:     mkInput("Password (password grant)"),
		styles:         styles,
	}
}

// SetSize updates the section width.
func (m *AuthSection) SetSize(w int) {
	m.width = w
	inputW := w - 18
	if inputW < 10 {
		inputW = 10
	}
	for _, ti := range []*textinput.Model{
		&m.username, &m.password, &m.token,
		&m.consumerKey, &m.consumerSecret, &m.oauth1Token, &m.oauth1Secret,
		&m.tokenURL, &m.clientID, &m.clientSecret, &m.scope,
		&m.o2Username, &m.o2Password,
	} {
		ti.Width = inputW
	}
}

// Editing returns whether any field is being edited.
func (m AuthSection) Editing() bool {
	return m.editing
}

// SetAccessToken records a fetched OAuth2 access token.
func (m *AuthSection) SetAccessToken(token string) {
	m.accessToken = token
}

// BuildAuth returns a request.Auth from the current state, or nil for
// no authentication.
func (m AuthSection) BuildAuth() *request.Auth {
	switch m.authType {
	case request.AuthBasic:
		return &request.Auth{
			Type: request.AuthBasic,
			Basic: &request.BasicAuth{
				Username: m.username.Value(),
				Password: m.password.Value(),
			},
		}
	case request.AuthBearer:
		return &request.Auth{
			Type:   request.AuthBearer,
			Bearer: &request.BearerAuth{Token: m.token.Value()},
		}
	case request.AuthOAuth1:
		return &request.Auth{
			Type: request.AuthOAuth1,
			OAuth1: &request.OAuth1Auth{
				ConsumerKey:     m.consumerKey.Value(),
				ConsumerSecret:  m.consumerSecret.Value(),
				Token:           m.oauth1Token.Value(),
				TokenSecret:     m.oauth1Secret.Value(),
				SignatureMethod: oauth1SigMethods[m.sigMethodIdx],
			},
		}
	case request.AuthOAuth2:
		return &request.Auth{
			Type: request.AuthOAuth2,
			OAuth2: &request.OAuth2Auth{
				GrantType:    oauth2GrantTypes[m.grantIdx],
				TokenURL:     m.tokenURL.Value(),
				ClientID:     m.clientID.Value(),
				ClientSecret: m.clientSecret.Value(),
				Scope:        m.scope.Value(),
				Username:     m.o2Username.Value(),
				Password:     m.o2Password.Value(),
				AccessToken:  m.accessToken,
			},
		}
	default:
		return nil
	}
}

// LoadAuth loads auth configuration from a saved request.
func (m *AuthSection) LoadAuth(auth *request.Auth) {
	m.cursor = 0
	if auth == nil {
		m.authType = request.AuthNone
		m.typeIndex = 0
		return
	}
	m.authType = auth.Type
	for i, t := range authTypes {
		if t == auth.Type {
			m.typeIndex = i
			break
		}
	}
	switch auth.Type {
	case request.AuthBasic:
		if auth.Basic != nil {
			m.username.SetValue(auth.Basic.Username)
			m.password.SetValue(auth.Basic.Password)
		}
	case request.AuthBearer:
		if auth.Bearer != nil {
			m.token.SetValue(auth.Bearer.Token)
		}
	case request.AuthOAuth1:
		if auth.OAuth1 != nil {
			m.consumerKey.SetValue(auth.OAuth1.ConsumerKey)
			m.consumerSecret.SetValue(auth.OAuth1.ConsumerSecret)
			m.oauth1Token.SetValue(auth.OAuth1.Token)
			m.oauth1Secret.SetValue(auth.OAuth1.TokenSecret)
			m.sigMethodIdx = 0
			for i, s := range oauth1SigMethods {
				if s == auth.OAuth1.SignatureMethod {
					m.sigMethodIdx = i
				}
			}
		}
	case request.AuthOAuth2:
		if auth.OAuth2 != nil {
			m.grantIdx = 0
			for i, g := range oauth2GrantTypes {
				if g == auth.OAuth2.GrantType {
					m.grantIdx = i
				}
			}
			m.tokenURL.SetValue(auth.OAuth2.TokenURL)
			m.clientID.SetValue(auth.OAuth2.ClientID)
			m.clientSecret.SetValue(auth.OAuth2.ClientSecret)
			m.scope.SetValue(auth.OAuth2.Scope)
			m.o2Username.SetValue(auth.OAuth2.Username)
			m.o2Password.SetValue(auth.OAuth2.Password)
			m.accessToken = auth.OAuth2.AccessToken
		}
	}
}

// Update handles input messages.
func (m AuthSection) Update(msg tea.Msg) (AuthSection, tea.Cmd) {
	if m.editing {
		return m.updateEditing(msg)
	}
	return m.updateNormal(msg)
}

func (m AuthSection) updateNormal(msg tea.Msg) (AuthSection, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < m.maxCursor() {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter", " ":
			switch {
			case m.cursor == 0:
				m.typeIndex = (m.typeIndex + 1) % len(authTypes)
				m.authType = authTypes[m.typeIndex]
				m.cursor = 0
			case m.authType == request.AuthOAuth1 && m.cursor == 5:
				m.sigMethodIdx = (m.sigMethodIdx + 1) % len(oauth1SigMethods)
			case m.authType == request.AuthOAuth2 && m.cursor == 1:
				m.grantIdx = (m.grantIdx + 1) % len(oauth2GrantTypes)
			case m.authType == request.AuthOAuth2 && m.cursor == 8:
				return m, func() tea.Msg { return msgs.FetchOAuth2TokenMsg{} }
			default:
				m.startEditing()
				return m, textinput.Blink
			}
		case "h", "left":
			if m.cursor == 0 {
				m.typeIndex = (m.typeIndex - 1 + len(authTypes)) % len(authTypes)
				m.authType = authTypes[m.typeIndex]
			}
		case "l", "right":
			if m.cursor == 0 {
				m.typeIndex = (m.typeIndex + 1) % len(authTypes)
				m.authType = authTypes[m.typeIndex]
			}
		}
	}
	return m, nil
}

func (m AuthSection) updateEditing(msg tea.Msg) (AuthSection, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "enter":
			m.blurAll()
			m.editing = false
			return m, nil
		}
	}

	var cmd tea.Cmd
	if in := m.cursorInput(); in != nil {
		*in, cmd = in.Update(msg)
	}
	return m, cmd
}

// cursorInput maps the cursor position to the input it edits, or nil
// for selector rows.
func (m *AuthSection) cursorInput() *textinput.Model {
	switch m.authType {
	case request.AuthBasic:
		switch m.cursor {
		case 1:
			return &m.username
		case 2:
			return &m.password
		}
	case request.AuthBearer:
		if m.cursor == 1 {
			return &m.token
		}
	case request.AuthOAuth1:
		switch m.cursor {
		case 1:
			return &m.consumerKey
		case 2:
			return &m.consumerSecret
		case 3:
			return &m.oauth1Token
		case 4:
			return &m.oauth1Secret
		}
	case request.AuthOAuth2:
		switch m.cursor {
		case 2:
			return &m.tokenURL
		case 3:
			return &m.clientID
		case 4:
			return &m.clientSecret
		case 5:
			return &m.scope
		case 6:
			return &m.o2Username
		case 7:
			return &m.o2Password
		}
	}
	return nil
}

func (m *AuthSection) startEditing() {
	in := m.cursorInput()
	if in == nil {
		return
	}
	m.editing = true
	in.Focus()
	in.CursorEnd()
}

func (m *AuthSection) blurAll() {
	for _, ti := range []*textinput.Model{
		&m.username, &m.password, &m.token,
		&m.consumerKey, &m.consumerSecret, &m.oauth1Token, &m.oauth1Secret,
		&m.tokenURL, &m.clientID, &m.clientSecret, &m.scope,
		&m.o2Username, &m.o2Password,
	} {
		ti.Blur()
	}
}

func (m AuthSection) maxCursor() int {
	switch m.authType {
	case request.AuthBasic:
		return 2 // type, username, password
	case request.AuthBearer:
		return 1 // type, token
	case request.AuthOAuth1:
		return 5 // type, 4 fields, signature method
	case request.AuthOAuth2:
		return 8 // type, grant, 6 fields, fetch row
	default:
		return 0
	}
}

// View renders the auth section.
func (m AuthSection) View() string {
	var lines []string

	typeLabel := "  Type: "
	if m.cursor == 0 {
		typeLabel = "> Type: "
	}

	var typeParts []string
	for i, t := range authTypes {
		if i == m.typeIndex {
			typeParts = append(typeParts, m.styles.TabActive.Render(t))
		} else {
			typeParts = append(typeParts, m.styles.TabInactive.Render(t))
		}
	}
	lines = append(lines, typeLabel+strings.Join(typeParts, " "))
	lines = append(lines, "")

	switch m.authType {
	case request.AuthNone:
		lines = append(lines, m.styles.Muted.Render("  No authentication"))

	case request.AuthBasic:
		lines = append(lines, m.renderField("Username", m.username, 1))
		lines = append(lines, m.renderField("Password", m.password, 2))

	case request.AuthBearer:
		lines = append(lines, m.renderField("Token", m.token, 1))

	case request.AuthOAuth1:
		lines = append(lines, m.renderField("Cons. Key", m.consumerKey, 1))
		lines = append(lines, m.renderField("Cons. Sec", m.consumerSecret, 2))
		lines = append(lines, m.renderField("Token", m.oauth1Token, 3))
		lines = append(lines, m.renderField("Tok. Sec", m.oauth1Secret, 4))
		lines = append(lines, m.renderSelector("Signature", oauth1SigMethods, m.sigMethodIdx, 5))

	case request.AuthOAuth2:
		lines = append(lines, m.renderSelector("Grant", oauth2GrantTypes, m.grantIdx, 1))
		lines = append(lines, m.renderField("Token URL", m.tokenURL, 2))
		lines = append(lines, m.renderField("Client ID", m.clientID, 3))
		lines = append(lines, m.renderField("Secret", m.clientSecret, 4))
		lines = append(lines, m.renderField("Scope", m.scope, 5))
		lines = append(lines, m.renderField("Username", m.o2Username, 6))
		lines = append(lines, m.renderField("Password", m.o2Password, 7))

		fetchPrefix := "  "
		if m.cursor == 8 {
			fetchPrefix = "> "
		}
		fetchLabel := m.styles.Success.Render("[ Fetch Token ]")
		if m.accessToken != "" {
			preview := m.accessToken
			if len(preview) > 24 {
				preview = preview[:24] + "…"
			}
			fetchLabel += "  " + m.styles.Muted.Render("token: "+preview)
		}
		lines = append(lines, fetchPrefix+fetchLabel)
	}

	return strings.Join(lines, "\n")
}

func (m AuthSection) renderField(label string, input textinput.Model, fieldIdx int) string {
	prefix := "  "
	if m.cursor == fieldIdx {
		prefix = "> "
	}

	labelStr := m.styles.KVKey.Render(lipgloss.NewStyle().Width(12).Render(label))

	if m.cursor == fieldIdx && m.editing {
		return prefix + labelStr + " " + input.View()
	}

	val := input.Value()
	if val == "" {
		return prefix + labelStr + " " + m.styles.Muted.Render(input.Placeholder)
	}
	return prefix + labelStr + " " + m.styles.Normal.Render(val)
}

func (m AuthSection) renderSelector(label string, options []string, active, fieldIdx int) string {
	prefix := "  "
	if m.cursor == fieldIdx {
		prefix = "> "
	}
	labelStr := m.styles.KVKey.Render(lipgloss.NewStyle().Width(12).Render(label))

	var parts []string
	for i, opt := range options {
		if i == active {
			parts = append(parts, m.styles.TabActive.Render(opt))
		} else {
			parts = append(parts, m.styles.TabInactive.Render(opt))
		}
	}
	return prefix + labelStr + " " + strings.Join(parts, " ")
}
