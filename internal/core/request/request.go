// Package request defines the request configuration model and its
// file persistence. A request file describes a single HTTP call the
// way the user composed it: method, URL, query params, headers, one
// body representation, and one auth scheme.
package request

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// Methods lists the HTTP methods the editor cycles through.
var Methods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}

// Body types.
const (
	BodyNone = "none"
	BodyRaw  = "raw"
	BodyJSON = "json"
	BodyForm = "form"
)

// Auth types.
const (
	AuthNone   = "none"
	AuthBasic  = "basic"
	AuthBearer = "bearer"
	AuthOAuth1 = "oauth1"
	AuthOAuth2 = "oauth2"
)

// Request is a saved request configuration.
type Request struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Method string `yaml:"method"`
	URL    string `yaml:"url"`

	Params  []KVPair `yaml:"params,omitempty"`
	Headers []KVPair `yaml:"headers,omitempty"`
	Body    *Body    `yaml:"body,omitempty"`
	Auth    *Auth    `yaml:"auth,omitempty"`
	TLS     *TLS     `yaml:"tls,omitempty"`

	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// New creates a request with defaults.
func New(name, method, rawURL string) *Request {
	return &Request{
		ID:     uuid.New().String(),
		Name:   name,
		Method: method,
		URL:    rawURL,
	}
}

// KVPair is a key-value row with an enabled toggle. Disabled rows
// survive save/load but are never sent.
type KVPair struct {
	Key     string `yaml:"key"`
	Value   string `yaml:"value"`
	Enabled bool   `yaml:"enabled"`
}

// EnabledPairs returns the pairs that should be sent, as a map.
func EnabledPairs(pairs []KVPair) map[string]string {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		if p.Enabled && p.Key != "" {
			out[p.Key] = p.Value
		}
	}
	return out
}

// Body holds the request body. Type selects the single active
// representation; the other fields are ignored by the sender.
type Body struct {
	Type    string   `yaml:"type"` // none, raw, json, form
	Content string   `yaml:"content,omitempty"`
	Form    []KVPair `yaml:"form,omitempty"`
}

// Auth is a tagged union of the supported auth schemes. Exactly one
// variant matching Type is populated.
type Auth struct {
	Type   string      `yaml:"type"` // none, basic, bearer, oauth1, oauth2
	Basic  *BasicAuth  `yaml:"basic,omitempty"`
	Bearer *BearerAuth `yaml:"bearer,omitempty"`
	OAuth1 *OAuth1Auth `yaml:"oauth1,omitempty"`
	OAuth2 *OAuth2Auth `yaml:"oauth2,omitempty"`
}

// BasicAuth holds HTTP Basic credentials.
type BasicAuth struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// BearerAuth holds a bearer token.
type BearerAuth struct {
	Token string `yaml:"token"`
}

// OAuth1Auth holds OAuth 1.0a signing credentials.
type OAuth1Auth struct {
	ConsumerKey     string `yaml:"consumer_key"`
	ConsumerSecret  string `yaml:"consumer_secret"`
	Token           string `yaml:"token,omitempty"`
	TokenSecret     string `yaml:"token_secret,omitempty"`
	SignatureMethod string `yaml:"signature_method,omitempty"` // HMAC-SHA1 (default), PLAINTEXT
}

// OAuth2Auth holds OAuth2 client settings plus the token once acquired.
type OAuth2Auth struct {
	GrantType    string `yaml:"grant_type,omitempty"` // client_credentials, password
	TokenURL     string `yaml:"token_url,omitempty"`
	ClientID     string `yaml:"client_id,omitempty"`
	ClientSecret string `yaml:"client_secret,omitempty"`
	Scope        string `yaml:"scope,omitempty"`
	Username     string `yaml:"username,omitempty"`
	Password     string `yaml:"password,omitempty"`
	AccessToken  string `yaml:"access_token,omitempty"`
}

// TLS holds per-request TLS options.
type TLS struct {
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify,omitempty"`
	CAFile             string `yaml:"ca_file,omitempty"`
	CertFile           string `yaml:"cert_file,omitempty"`
	KeyFile            string `yaml:"key_file,omitempty"`
}

// Validate checks that the request can be sent.
func (r *Request) Validate() error {
	if r.URL == "" {
		return fmt.Errorf("URL is required")
	}
	if r.Method == "" {
		return fmt.Errorf("method is required")
	}
	if _, err := url.Parse(r.URL); err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if r.Body != nil && r.Body.Type == BodyJSON && r.Body.Content != "" {
		if !json.Valid([]byte(r.Body.Content)) {
			return fmt.Errorf("body is not valid JSON")
		}
	}
	if r.Auth != nil {
		if err := r.Auth.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (a *Auth) validate() error {
	switch a.Type {
	case "", AuthNone, AuthBasic, AuthBearer:
		return nil
	case AuthOAuth1:
		if a.OAuth1 == nil || a.OAuth1.ConsumerKey == "" || a.OAuth1.ConsumerSecret == "" {
			return fmt.Errorf("oauth1 auth requires consumer key and secret")
		}
		return nil
	case AuthOAuth2:
		if a.OAuth2 == nil {
			return fmt.Errorf("oauth2 auth is missing its settings")
		}
		return nil
	default:
		return fmt.Errorf("unknown auth type: %s", a.Type)
	}
}

// BodyType returns the active body representation, BodyNone if unset.
func (r *Request) BodyType() string {
	if r.Body == nil || r.Body.Type == "" {
		return BodyNone
	}
	return r.Body.Type
}

// Insecure reports whether certificate verification is disabled.
func (r *Request) Insecure() bool {
	return r.TLS != nil && r.TLS.InsecureSkipVerify
}
