package oauth2

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetch_ClientCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if r.Form.Get("grant_type") != "client_credentials" {
			t.Errorf("expected client_credentials grant, got %s", r.Form.Get("grant_type"))
		}
		if r.Form.Get("client_id") != "cid" || r.Form.Get("client_secret") != "sec" {
			t.Error("client credentials not forwarded")
		}
		if r.Form.Get("scope") != "read write" {
			t.Errorf("scope not forwarded: %s", r.Form.Get("scope"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"at123","token_type":"Bearer","expires_in":3600}`))
	}))
	defer server.Close()

	tok, err := Fetch(context.Background(), Config{
		TokenURL:     server.URL,
		ClientID:     "cid",
		ClientSecret: "sec",
		Scope:        "read write",
	})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if tok.AccessToken != "at123" {
		t.Errorf("expected at123, got %s", tok.AccessToken)
	}
	if tok.IsExpired() {
		t.Error("fresh token should not be expired")
	}
}

func TestFetch_PasswordGrant(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.Form.Get("grant_type") != "password" {
			t.Errorf("expected password grant, got %s", r.Form.Get("grant_type"))
		}
		if r.Form.Get("username") != "bob" || r.Form.Get("password") != "hunter2" {
			t.Error("resource owner credentials not forwarded")
		}
		w.Write([]byte(`{"access_token":"at456"}`))
	}))
	defer server.Close()

	tok, err := Fetch(context.Background(), Config{
		GrantType: "password",
		TokenURL:  server.URL,
		ClientID:  "cid",
		Username:  "bob",
		Password:  "hunter2",
	})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if tok.AccessToken != "at456" {
		t.Errorf("expected at456, got %s", tok.AccessToken)
	}
}

func TestFetch_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_client"}`))
	}))
	defer server.Close()

	_, err := Fetch(context.Background(), Config{TokenURL: server.URL})
	if err == nil {
		t.Error("expected error for 400 response")
	}
}

func TestFetch_Validation(t *testing.T) {
	if _, err := Fetch(context.Background(), Config{}); err == nil {
		t.Error("expected error without token URL")
	}
	if _, err := Fetch(context.Background(), Config{TokenURL: "http://x", GrantType: "implicit"}); err == nil {
		t.Error("expected error for unsupported grant")
	}
}

func TestRefresh(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.Form.Get("grant_type") != "refresh_token" {
			t.Errorf("expected refresh_token grant, got %s", r.Form.Get("grant_type"))
		}
		if r.Form.Get("refresh_token") != "rt789" {
			t.Error("refresh token not forwarded")
		}
		w.Write([]byte(`{"access_token":"new-at","refresh_token":"new-rt"}`))
	}))
	defer server.Close()

	tok, err := Refresh(context.Background(), server.URL, "cid", "sec", "rt789")
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if tok.AccessToken != "new-at" || tok.RefreshToken != "new-rt" {
		t.Errorf("unexpected token: %+v", tok)
	}
}

func TestToken_IsExpired(t *testing.T) {
	tok := &Token{AccessToken: "x", ExpiresIn: 1, ObtainedAt: time.Now().Add(-2 * time.Second)}
	if !tok.IsExpired() {
		t.Error("token past expiry should be expired")
	}
	tok = &Token{AccessToken: "x"}
	if tok.IsExpired() {
		t.Error("token without expiry should never expire")
	}
}
