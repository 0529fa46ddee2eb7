package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/tkaraca/restel/internal/core/request"
)

func TestExecute_GET(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Query().Get("page") != "1" {
			t.Error("expected page=1 query param")
		}
		if r.URL.Query().Get("debug") != "" {
			t.Error("disabled param should not be sent")
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	req := request.New("list", "GET", server.URL+"/test")
	req.Params = []request.KVPair{
		{Key: "page", Value: "1", Enabled: true},
		{Key: "debug", Value: "1", Enabled: false},
	}
	req.Headers = []request.KVPair{{Key: "Accept", Value: "application/json", Enabled: true}}

	resp, err := New().Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if !resp.IsJSON() {
		t.Errorf("expected JSON content type, got %s", resp.ContentType)
	}
	if resp.Duration == 0 {
		t.Error("duration should be > 0")
	}
	if resp.Size != int64(len(resp.Body)) {
		t.Error("size should match body length")
	}
}

func TestExecute_JSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json, got %s", ct)
		}
		body, _ := io.ReadAll(r.Body)
		var data map[string]string
		json.Unmarshal(body, &data)
		if data["name"] != "test" {
			t.Errorf("expected name=test, got %s", data["name"])
		}
		w.WriteHeader(201)
	}))
	defer server.Close()

	req := request.New("create", "POST", server.URL+"/users")
	req.Body = &request.Body{Type: request.BodyJSON, Content: `{"name":"test"}`}

	resp, err := New().Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Errorf("expected 201, got %d", resp.StatusCode)
	}
}

func TestExecute_InvalidJSONBody(t *testing.T) {
	req := request.New("bad", "POST", "http://127.0.0.1:1/ignored")
	req.Body = &request.Body{Type: request.BodyJSON, Content: "{oops"}
	if _, err := New().Execute(context.Background(), req); err == nil {
		t.Error("expected validation error for malformed JSON body")
	}
}

func TestExecute_FormBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("expected form content type, got %s", ct)
		}
		body, _ := io.ReadAll(r.Body)
		form, _ := url.ParseQuery(string(body))
		if form.Get("user") != "bob" {
			t.Errorf("expected user=bob, got %s", form.Get("user"))
		}
		if form.Has("hidden") {
			t.Error("disabled form field should not be sent")
		}
	}))
	defer server.Close()

	req := request.New("login", "POST", server.URL+"/login")
	req.Body = &request.Body{
		Type: request.BodyForm,
		Form: []request.KVPair{
			{Key: "user", Value: "bob", Enabled: true},
			{Key: "hidden", Value: "x", Enabled: false},
		},
	}

	if _, err := New().Execute(context.Background(), req); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
}

func TestExecute_BasicAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "admin" || pass != "secret" {
			t.Errorf("expected admin:secret, got %s:%s", user, pass)
		}
	}))
	defer server.Close()

	req := request.New("auth", "GET", server.URL)
	req.Auth = &request.Auth{
		Type:  request.AuthBasic,
		Basic: &request.BasicAuth{Username: "admin", Password: "secret"},
	}
	if _, err := New().Execute(context.Background(), req); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
}

func TestExecute_BearerAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer mytoken" {
			t.Errorf("expected Bearer mytoken, got %q", auth)
		}
	}))
	defer server.Close()

	req := request.New("auth", "GET", server.URL)
	req.Auth = &request.Auth{
		Type:   request.AuthBearer,
		Bearer: &request.BearerAuth{Token: "mytoken"},
	}
	if _, err := New().Execute(context.Background(), req); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
}

func TestExecute_OAuth1Signature(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "OAuth ") {
			t.Errorf("expected OAuth header, got %q", auth)
		}
		if !strings.Contains(auth, `oauth_consumer_key="ck"`) {
			t.Errorf("consumer key missing from header: %q", auth)
		}
	}))
	defer server.Close()

	req := request.New("signed", "GET", server.URL+"/resource")
	req.Auth = &request.Auth{
		Type:   request.AuthOAuth1,
		OAuth1: &request.OAuth1Auth{ConsumerKey: "ck", ConsumerSecret: "cs"},
	}
	if _, err := New().Execute(context.Background(), req); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
}

func TestExecute_OAuth2Token(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer at123" {
			t.Errorf("expected Bearer at123, got %q", auth)
		}
	}))
	defer server.Close()

	req := request.New("api", "GET", server.URL)
	req.Auth = &request.Auth{
		Type:   request.AuthOAuth2,
		OAuth2: &request.OAuth2Auth{AccessToken: "at123"},
	}
	if _, err := New().Execute(context.Background(), req); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
}

func TestExecute_InsecureSkipVerify(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	// Self-signed cert fails with verification on.
	req := request.New("tls", "GET", server.URL)
	if _, err := New().Execute(context.Background(), req); err == nil {
		t.Error("expected TLS verification failure against self-signed cert")
	}

	// And succeeds with the verify toggle off.
	req.TLS = &request.TLS{InsecureSkipVerify: true}
	resp, err := New().Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute with insecure toggle failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if !resp.TLS {
		t.Error("response should be marked as TLS")
	}
}

func TestExecute_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	req := request.New("slow", "GET", server.URL)
	req.Timeout = 20 * time.Millisecond
	if _, err := New().Execute(context.Background(), req); err == nil {
		t.Error("expected timeout error")
	}
}

func TestExecute_Validation(t *testing.T) {
	c := New()
	if _, err := c.Execute(context.Background(), &request.Request{Method: "GET"}); err == nil {
		t.Error("expected error for empty URL")
	}
	if _, err := c.Execute(context.Background(), &request.Request{URL: "http://example.com"}); err == nil {
		t.Error("expected error for empty method")
	}
}

func TestBuildBody(t *testing.T) {
	body, ct, err := buildBody(nil)
	if err != nil || body != nil || ct != "" {
		t.Error("nil body should produce nothing")
	}

	body, ct, err = buildBody(&request.Body{Type: request.BodyRaw, Content: "hello"})
	if err != nil || string(body) != "hello" || ct != "" {
		t.Errorf("raw body mismatch: %q %q %v", body, ct, err)
	}

	_, _, err = buildBody(&request.Body{Type: "multipart"})
	if err == nil {
		t.Error("expected error for unknown body type")
	}
}
