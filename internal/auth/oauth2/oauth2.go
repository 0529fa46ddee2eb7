// Package oauth2 acquires access tokens with the non-interactive
// OAuth2 grants.
package oauth2

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config holds token endpoint settings.
type Config struct {
	GrantType    string // client_credentials, password
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scope        string
	Username     string // password grant only
	Password     string // password grant only
}

// Token is a token endpoint response.
type Token struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	RefreshToken string    `json:"refresh_token"`
	Scope        string    `json:"scope"`
	ObtainedAt   time.Time `json:"-"`
}

// IsExpired reports whether the token has passed its expiry.
func (t *Token) IsExpired() bool {
	if t.ExpiresIn == 0 {
		return false
	}
	return time.Since(t.ObtainedAt) > time.Duration(t.ExpiresIn)*time.Second
}

// Fetch acquires a token using the configured grant.
func Fetch(ctx context.Context, cfg Config) (*Token, error) {
	if cfg.TokenURL == "" {
		return nil, fmt.Errorf("token URL is required")
	}

	data := url.Values{
		"client_id":     {cfg.ClientID},
		"client_secret": {cfg.ClientSecret},
	}
	switch cfg.GrantType {
	case "", "client_credentials":
		data.Set("grant_type", "client_credentials")
	case "password":
		data.Set("grant_type", "password")
		data.Set("username", cfg.Username)
		data.Set("password", cfg.Password)
	default:
		return nil, fmt.Errorf("unsupported grant type: %s", cfg.GrantType)
	}
	if cfg.Scope != "" {
		data.Set("scope", cfg.Scope)
	}

	return tokenRequest(ctx, cfg.TokenURL, data)
}

// Refresh exchanges a refresh token for a new access token.
func Refresh(ctx context.Context, tokenURL, clientID, clientSecret, refreshToken string) (*Token, error) {
	data := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
		"client_id":     {clientID},
	}
	if clientSecret != "" {
		data.Set("client_secret", clientSecret)
	}
	return tokenRequest(ctx, tokenURL, data)
}

func tokenRequest(ctx context.Context, tokenURL string, data url.Values) (*Token, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var token Token
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("parsing token response: %w", err)
	}
	token.ObtainedAt = time.Now()

	return &token, nil
}
