package request

import (
	"path/filepath"
	"testing"
	"time"
)

const sampleYAML = `
id: "req-1"
name: Create User
method: POST
url: "https://api.example.com/users"
params:
  - { key: verbose, value: "1", enabled: true }
  - { key: dry_run, value: "1", enabled: false }
headers:
  - { key: Accept, value: application/json, enabled: true }
body:
  type: json
  content: '{"name":"test"}'
auth:
  type: basic
  basic:
    username: admin
    password: secret
`

func TestLoadBytes(t *testing.T) {
	req, err := LoadBytes([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("LoadBytes failed: %v", err)
	}

	if req.Method != "POST" {
		t.Errorf("expected POST, got %s", req.Method)
	}
	if req.URL != "https://api.example.com/users" {
		t.Errorf("unexpected URL: %s", req.URL)
	}
	if len(req.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(req.Params))
	}
	if req.Params[1].Enabled {
		t.Error("dry_run param should be disabled")
	}
	if req.BodyType() != BodyJSON {
		t.Errorf("expected json body, got %s", req.BodyType())
	}
	if req.Auth == nil || req.Auth.Type != AuthBasic || req.Auth.Basic.Username != "admin" {
		t.Error("basic auth not loaded")
	}
}

func TestLoadBytes_AssignsID(t *testing.T) {
	req, err := LoadBytes([]byte("name: Bare\nurl: https://example.com\n"))
	if err != nil {
		t.Fatalf("LoadBytes failed: %v", err)
	}
	if req.ID == "" {
		t.Error("expected an ID to be assigned")
	}
	if req.Method != "GET" {
		t.Errorf("expected GET default, got %s", req.Method)
	}
}

func TestSaveAndLoadRoundtrip(t *testing.T) {
	req := New("Search", "GET", "https://api.example.com/search")
	req.Params = []KVPair{{Key: "q", Value: "golang", Enabled: true}}
	req.Headers = []KVPair{{Key: "Accept", Value: "application/json", Enabled: true}}
	req.Body = &Body{Type: BodyRaw, Content: "plain text"}
	req.Auth = &Auth{
		Type: AuthOAuth1,
		OAuth1: &OAuth1Auth{
			ConsumerKey:    "ck",
			ConsumerSecret: "cs",
			Token:          "tok",
			TokenSecret:    "ts",
		},
	}
	req.TLS = &TLS{InsecureSkipVerify: true}
	req.Timeout = 10 * time.Second

	path := filepath.Join(t.TempDir(), "search"+Ext)
	if err := SaveFile(req, path); err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if loaded.Method != req.Method || loaded.URL != req.URL {
		t.Errorf("method/URL not preserved: %s %s", loaded.Method, loaded.URL)
	}
	if len(loaded.Params) != 1 || loaded.Params[0].Key != "q" {
		t.Error("params not preserved")
	}
	if loaded.Body == nil || loaded.Body.Type != BodyRaw || loaded.Body.Content != "plain text" {
		t.Error("body not preserved")
	}
	if loaded.Auth == nil || loaded.Auth.Type != AuthOAuth1 {
		t.Fatal("auth not preserved")
	}
	if loaded.Auth.OAuth1.ConsumerSecret != "cs" || loaded.Auth.OAuth1.TokenSecret != "ts" {
		t.Error("oauth1 credentials not preserved")
	}
	if !loaded.Insecure() {
		t.Error("insecure toggle not preserved")
	}
	if loaded.Timeout != 10*time.Second {
		t.Errorf("timeout not preserved: %v", loaded.Timeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr bool
	}{
		{"ok", New("t", "GET", "https://example.com"), false},
		{"empty url", New("t", "GET", ""), true},
		{"empty method", &Request{URL: "https://example.com"}, true},
		{
			"bad json body",
			&Request{Method: "POST", URL: "https://example.com",
				Body: &Body{Type: BodyJSON, Content: "{not json"}},
			true,
		},
		{
			"json body ok",
			&Request{Method: "POST", URL: "https://example.com",
				Body: &Body{Type: BodyJSON, Content: `{"a":1}`}},
			false,
		},
		{
			"raw body ignores json rule",
			&Request{Method: "POST", URL: "https://example.com",
				Body: &Body{Type: BodyRaw, Content: "{not json"}},
			false,
		},
		{
			"oauth1 missing consumer key",
			&Request{Method: "GET", URL: "https://example.com",
				Auth: &Auth{Type: AuthOAuth1, OAuth1: &OAuth1Auth{ConsumerSecret: "cs"}}},
			true,
		},
		{
			"unknown auth type",
			&Request{Method: "GET", URL: "https://example.com",
				Auth: &Auth{Type: "digest"}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnabledPairs(t *testing.T) {
	pairs := []KVPair{
		{Key: "a", Value: "1", Enabled: true},
		{Key: "b", Value: "2", Enabled: false},
		{Key: "", Value: "3", Enabled: true},
	}
	got := EnabledPairs(pairs)
	if len(got) != 1 || got["a"] != "1" {
		t.Errorf("unexpected enabled pairs: %v", got)
	}
}

func TestListDir(t *testing.T) {
	dir := t.TempDir()

	a := New("Alpha", "GET", "https://example.com/a")
	b := New("Beta", "POST", "https://example.com/b")
	if err := SaveFile(a, filepath.Join(dir, "alpha"+Ext)); err != nil {
		t.Fatal(err)
	}
	if err := SaveFile(b, filepath.Join(dir, "beta"+Ext)); err != nil {
		t.Fatal(err)
	}

	entries, err := ListDir(dir)
	if err != nil {
		t.Fatalf("ListDir failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "alpha" || entries[0].Method != "GET" {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Name != "beta" || entries[1].Method != "POST" {
		t.Errorf("unexpected second entry: %+v", entries[1])
	}
}
