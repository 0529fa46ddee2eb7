package export

import (
	"strings"
	"testing"

	"github.com/tkaraca/restel/internal/core/request"
)

func TestAsCurl_Basic(t *testing.T) {
	req := request.New("t", "GET", "https://api.example.com/users")
	cmd := AsCurl(req)
	if cmd != "curl 'https://api.example.com/users'" {
		t.Errorf("unexpected command: %s", cmd)
	}
}

func TestAsCurl_FullRequest(t *testing.T) {
	req := request.New("t", "POST", "https://api.example.com/users")
	req.Params = []request.KVPair{{Key: "notify", Value: "true", Enabled: true}}
	req.Headers = []request.KVPair{
		{Key: "Accept", Value: "application/json", Enabled: true},
		{Key: "X-Debug", Value: "1", Enabled: false},
	}
	req.Body = &request.Body{Type: request.BodyJSON, Content: `{"name":"bob"}`}
	req.Auth = &request.Auth{Type: request.AuthBearer, Bearer: &request.BearerAuth{Token: "tok"}}
	req.TLS = &request.TLS{InsecureSkipVerify: true}

	cmd := AsCurl(req)
	for _, want := range []string{
		"-X POST",
		"-k",
		"'Accept: application/json'",
		"'Authorization: Bearer tok'",
		"'Content-Type: application/json'",
		`-d '{"name":"bob"}'`,
		"notify=true",
	} {
		if !strings.Contains(cmd, want) {
			t.Errorf("command missing %q: %s", want, cmd)
		}
	}
	if strings.Contains(cmd, "X-Debug") {
		t.Error("disabled header should not be exported")
	}
}

func TestAsCurl_FormBody(t *testing.T) {
	req := request.New("t", "POST", "https://example.com/login")
	req.Body = &request.Body{
		Type: request.BodyForm,
		Form: []request.KVPair{{Key: "user", Value: "bob", Enabled: true}},
	}
	cmd := AsCurl(req)
	if !strings.Contains(cmd, "--data-urlencode 'user=bob'") {
		t.Errorf("form field missing: %s", cmd)
	}
}

func TestAsCurl_QuoteEscaping(t *testing.T) {
	req := request.New("t", "POST", "https://example.com")
	req.Body = &request.Body{Type: request.BodyRaw, Content: "it's"}
	cmd := AsCurl(req)
	if !strings.Contains(cmd, `'it'\''s'`) {
		t.Errorf("single quote not escaped: %s", cmd)
	}
}
