package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/tkaraca/restel/internal/client"
	"github.com/tkaraca/restel/internal/core/request"
)

func TestPrintSendText_WhitespaceJSONBody(t *testing.T) {
	req := request.New("items", "GET", "https://api.example.com/items")
	resp := &client.Response{
		StatusCode:  200,
		Status:      "200 OK",
		Body:        []byte(" "),
		ContentType: "application/json",
		Duration:    12 * time.Millisecond,
		Size:        1,
	}

	var buf bytes.Buffer
	printSendText(&buf, req, resp, false)

	out := buf.String()
	if !strings.Contains(out, "200 OK") {
		t.Fatalf("missing status line in output:\n%s", out)
	}
	// Nothing printable survives pretty-printing, so the body section
	// is omitted entirely.
	if strings.Count(out, "\n") != 2 {
		t.Fatalf("expected only the request and status lines, got:\n%q", out)
	}
}

func TestPrintSendText_JSONBodyAndHeaders(t *testing.T) {
	req := request.New("items", "GET", "https://api.example.com/items")
	resp := &client.Response{
		StatusCode:  200,
		Status:      "200 OK",
		Headers:     http.Header{"X-Beta": {"2"}, "X-Alpha": {"1"}},
		Body:        []byte(`{"id":1}`),
		ContentType: "application/json",
		Duration:    12 * time.Millisecond,
		Size:        8,
	}

	var buf bytes.Buffer
	printSendText(&buf, req, resp, true)

	out := buf.String()
	if !strings.Contains(out, `"id": 1`) {
		t.Fatalf("body should be pretty-printed, got:\n%s", out)
	}
	if strings.Index(out, "X-Alpha") > strings.Index(out, "X-Beta") {
		t.Fatal("headers should be sorted")
	}
}

func TestPrintSendJSON(t *testing.T) {
	req := request.New("items", "POST", "https://api.example.com/items")
	resp := &client.Response{
		StatusCode:  201,
		Status:      "201 Created",
		Headers:     http.Header{"Location": {"/items/7"}},
		Body:        []byte(`{"id":7}`),
		ContentType: "application/json",
		Duration:    80 * time.Millisecond,
		Size:        8,
	}

	var buf bytes.Buffer
	if err := printSendJSON(&buf, req, resp); err != nil {
		t.Fatalf("printSendJSON failed: %v", err)
	}

	var got sendResult
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if got.StatusCode != 201 || got.DurationMS != 80 {
		t.Fatalf("unexpected result: %+v", got)
	}
	if got.Headers["Location"] != "/items/7" {
		t.Fatalf("headers not flattened: %+v", got.Headers)
	}
}
