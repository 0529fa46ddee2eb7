// Package oauth1 signs HTTP requests per RFC 5849 (OAuth 1.0a).
package oauth1

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Signature methods.
const (
	SignatureHMACSHA1  = "HMAC-SHA1"
	SignaturePlaintext = "PLAINTEXT"
)

// Credentials holds the consumer and (optional) token credentials.
type Credentials struct {
	ConsumerKey     string
	ConsumerSecret  string
	Token           string
	TokenSecret     string
	SignatureMethod string // defaults to HMAC-SHA1
}

// Sign computes the OAuth signature for req and sets the Authorization
// header. body is the request body when the content type is
// application/x-www-form-urlencoded; its parameters join the signature
// base string per RFC 5849.
func Sign(req *http.Request, body []byte, creds Credentials, t time.Time) error {
	if creds.ConsumerKey == "" || creds.ConsumerSecret == "" {
		return fmt.Errorf("oauth1 consumer key and secret are required")
	}

	method := creds.SignatureMethod
	if method == "" {
		method = SignatureHMACSHA1
	}

	nonce, err := newNonce()
	if err != nil {
		return fmt.Errorf("generating nonce: %w", err)
	}

	oauthParams := map[string]string{
		"oauth_consumer_key":     creds.ConsumerKey,
		"oauth_nonce":            nonce,
		"oauth_signature_method": method,
		"oauth_timestamp":        strconv.FormatInt(t.Unix(), 10),
		"oauth_version":          "1.0",
	}
	if creds.Token != "" {
		oauthParams["oauth_token"] = creds.Token
	}

	var signature string
	switch method {
	case SignaturePlaintext:
		signature = signingKey(creds)
	case SignatureHMACSHA1:
		base := baseString(req, body, oauthParams)
		mac := hmac.New(sha1.New, []byte(signingKey(creds)))
		mac.Write([]byte(base))
		signature = base64.StdEncoding.EncodeToString(mac.Sum(nil))
	default:
		return fmt.Errorf("unsupported signature method: %s", method)
	}
	oauthParams["oauth_signature"] = signature

	req.Header.Set("Authorization", authorizationHeader(oauthParams))
	return nil
}

func signingKey(creds Credentials) string {
	return encode(creds.ConsumerSecret) + "&" + encode(creds.TokenSecret)
}

// baseString builds the RFC 5849 §3.4.1 signature base string.
func baseString(req *http.Request, body []byte, oauthParams map[string]string) string {
	// Collect parameters: query, oauth, and form body.
	params := url.Values{}
	for k, vs := range req.URL.Query() {
		for _, v := range vs {
			params.Add(k, v)
		}
	}
	for k, v := range oauthParams {
		params.Add(k, v)
	}
	if isFormBody(req) && len(body) > 0 {
		if form, err := url.ParseQuery(string(body)); err == nil {
			for k, vs := range form {
				for _, v := range vs {
					params.Add(k, v)
				}
			}
		}
	}

	// Normalize: encode pairs, sort by encoded key then value.
	type pair struct{ k, v string }
	pairs := make([]pair, 0, len(params))
	for k, vs := range params {
		for _, v := range vs {
			pairs = append(pairs, pair{encode(k), encode(v)})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].k != pairs[j].k {
			return pairs[i].k < pairs[j].k
		}
		return pairs[i].v < pairs[j].v
	})

	var norm strings.Builder
	for i, p := range pairs {
		if i > 0 {
			norm.WriteByte('&')
		}
		norm.WriteString(p.k)
		norm.WriteByte('=')
		norm.WriteString(p.v)
	}

	return strings.Join([]string{
		strings.ToUpper(req.Method),
		encode(baseURI(req.URL)),
		encode(norm.String()),
	}, "&")
}

// baseURI is the scheme://host/path form with default ports elided.
func baseURI(u *url.URL) string {
	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Host)
	switch {
	case scheme == "http" && strings.HasSuffix(host, ":80"):
		host = strings.TrimSuffix(host, ":80")
	case scheme == "https" && strings.HasSuffix(host, ":443"):
		host = strings.TrimSuffix(host, ":443")
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return scheme + "://" + host + path
}

func authorizationHeader(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf(`%s="%s"`, encode(k), encode(params[k])))
	}
	return "OAuth " + strings.Join(parts, ", ")
}

func isFormBody(req *http.Request) bool {
	ct := req.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded")
}

func newNonce() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// encode applies RFC 3986 percent-encoding as required by §3.6.
func encode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	return c >= 'A' && c <= 'Z' ||
		c >= 'a' && c <= 'z' ||
		c >= '0' && c <= '9' ||
		c == '-' || c == '.' || c == '_' || c == '~'
}
