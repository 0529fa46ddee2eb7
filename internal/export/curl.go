// Package export converts request configurations to other formats.
package export

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tkaraca/restel/internal/core/request"
)

// AsCurl renders a request configuration as a curl command.
func AsCurl(req *request.Request) string {
	var parts []string
	parts = append(parts, "curl")

	if req.Method != "GET" && req.Method != "" {
		parts = append(parts, "-X", req.Method)
	}

	if req.Insecure() {
		parts = append(parts, "-k")
	}

	for _, h := range req.Headers {
		if h.Enabled && h.Key != "" {
			parts = append(parts, "-H", quote(h.Key+": "+h.Value))
		}
	}

	if req.Auth != nil {
		switch req.Auth.Type {
		case request.AuthBasic:
			if req.Auth.Basic != nil {
				parts = append(parts, "-u", quote(req.Auth.Basic.Username+":"+req.Auth.Basic.Password))
			}
		case request.AuthBearer:
			if req.Auth.Bearer != nil {
				parts = append(parts, "-H", quote("Authorization: Bearer "+req.Auth.Bearer.Token))
			}
		case request.AuthOAuth2:
			if req.Auth.OAuth2 != nil && req.Auth.OAuth2.AccessToken != "" {
				parts = append(parts, "-H", quote("Authorization: Bearer "+req.Auth.OAuth2.AccessToken))
			}
		}
		// oauth1 signatures are per-request; curl cannot reproduce them.
	}

	switch req.BodyType() {
	case request.BodyRaw:
		parts = append(parts, "-d", quote(req.Body.Content))
	case request.BodyJSON:
		parts = append(parts, "-H", quote("Content-Type: application/json"))
		parts = append(parts, "-d", quote(req.Body.Content))
	case request.BodyForm:
		for _, f := range req.Body.Form {
			if f.Enabled && f.Key != "" {
				parts = append(parts, "--data-urlencode", quote(f.Key+"="+f.Value))
			}
		}
	}

	parts = append(parts, quote(buildURL(req)))
	return strings.Join(parts, " ")
}

func buildURL(req *request.Request) string {
	params := request.EnabledPairs(req.Params)
	if len(params) == 0 {
		return req.URL
	}
	u, err := url.Parse(req.URL)
	if err != nil {
		return req.URL
	}
	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func quote(s string) string {
	return fmt.Sprintf("'%s'", strings.ReplaceAll(s, "'", `'\''`))
}
