package mock

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tkaraca/restel/internal/core/request"
)

func testServer(t *testing.T, reqs []*request.Request) *httptest.Server {
	t.Helper()
	s, err := NewServer(reqs)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestServer_JSONRoute(t *testing.T) {
	req := request.New("users", "GET", "https://api.example.com/users")
	req.Body = &request.Body{Type: request.BodyJSON, Content: `[{"id":1}]`}
	srv := testServer(t, []*request.Request{req})

	resp, err := http.Get(srv.URL + "/users")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("unexpected status: %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("unexpected content type: %s", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != `[{"id":1}]` {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestServer_PostWithoutBody(t *testing.T) {
	req := request.New("create", "POST", "https://api.example.com/users")
	srv := testServer(t, []*request.Request{req})

	resp, err := http.Post(srv.URL+"/users", "application/json", nil)
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Errorf("POST without body should answer 201, got %d", resp.StatusCode)
	}
}

func TestServer_NotFound(t *testing.T) {
	req := request.New("users", "GET", "https://api.example.com/users")
	srv := testServer(t, []*request.Request{req})

	resp, err := http.Get(srv.URL + "/missing")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unexpected status: %d", resp.StatusCode)
	}
}

func TestServer_DuplicateRoutesSkipped(t *testing.T) {
	a := request.New("a", "GET", "https://api.example.com/users")
	a.Body = &request.Body{Type: request.BodyRaw, Content: "first"}
	b := request.New("b", "GET", "https://other.example.com/users")
	b.Body = &request.Body{Type: request.BodyRaw, Content: "second"}
	srv := testServer(t, []*request.Request{a, b})

	resp, err := http.Get(srv.URL + "/users")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if string(body) != "first" {
		t.Errorf("first route should win, got %s", body)
	}
}

func TestServer_SchemelessURLSkipped(t *testing.T) {
	good := request.New("users", "GET", "https://api.example.com/users")
	bare := request.New("bare", "GET", "example.com/api/users")
	srv := testServer(t, []*request.Request{good, bare})

	resp, err := http.Get(srv.URL + "/users")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("unexpected status: %d", resp.StatusCode)
	}
}

func TestServer_NoRoutes(t *testing.T) {
	if _, err := NewServer(nil); err == nil {
		t.Error("expected error for empty request list")
	}

	bare := request.New("bare", "GET", "example.com/api/users")
	if _, err := NewServer([]*request.Request{bare}); err == nil {
		t.Error("expected error when no request is routable")
	}
}
