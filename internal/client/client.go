// Package client executes request configurations over HTTP.
package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"strings"
	"time"

	"github.com/tkaraca/restel/internal/auth/oauth1"
	"github.com/tkaraca/restel/internal/core/request"
	tlsconf "github.com/tkaraca/restel/internal/core/tls"
)

const (
	defaultTimeout = 30 * time.Second
	maxRedirects   = 10
)

// Response is the result of executing a request configuration. It is
// built once when the call completes and never mutated.
type Response struct {
	StatusCode  int
	Status      string
	Headers     http.Header
	Body        []byte
	ContentType string
	Duration    time.Duration
	Size        int64
	Proto       string
	TLS         bool
	Timing      Timing
}

// Timing is the per-phase breakdown captured via httptrace.
type Timing struct {
	DNSLookup    time.Duration
	Connect      time.Duration
	TLSHandshake time.Duration
	TTFB         time.Duration
	Transfer     time.Duration
	Total        time.Duration
}

// Client sends request configurations.
type Client struct {
	timeout time.Duration
}

// New creates a client with the default timeout.
func New() *Client {
	return &Client{timeout: defaultTimeout}
}

// SetTimeout sets the default timeout used when a request carries none.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.timeout = d
	}
}

// Execute sends the request and returns the response record. One call
// is in flight at a time; the ctx governs cancellation.
func (c *Client) Execute(ctx context.Context, req *request.Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing URL: %w", err)
	}
	if params := request.EnabledPairs(req.Params); len(params) > 0 {
		q := u.Query()
		for k, v := range params {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	body, bodyContentType, err := buildBody(req.Body)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for k, v := range request.EnabledPairs(req.Headers) {
		httpReq.Header.Set(k, v)
	}
	if bodyContentType != "" {
		httpReq.Header.Set("Content-Type", bodyContentType)
	}

	if err := applyAuth(httpReq, req.Auth, body); err != nil {
		return nil, err
	}

	tlsConfig, err := tlsconf.Build(req.TLS)
	if err != nil {
		return nil, fmt.Errorf("configuring TLS: %w", err)
	}
	transport := &http.Transport{
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig:     tlsConfig,
	}

	timeout := req.Timeout
	if timeout == 0 {
		timeout = c.timeout
	}
	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: transport,
		CheckRedirect: func(r *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}

	var dnsStart, connStart, tlsStart, gotConn, gotFirstByte time.Time
	var timing Timing
	trace := &httptrace.ClientTrace{
		DNSStart: func(httptrace.DNSStartInfo) { dnsStart = time.Now() },
		DNSDone:  func(httptrace.DNSDoneInfo) { timing.DNSLookup = time.Since(dnsStart) },
		ConnectStart: func(_, _ string) { connStart = time.Now() },
		ConnectDone:  func(_, _ string, _ error) { timing.Connect = time.Since(connStart) },
		TLSHandshakeStart: func() { tlsStart = time.Now() },
		TLSHandshakeDone: func(_ tls.ConnectionState, _ error) {
			timing.TLSHandshake = time.Since(tlsStart)
		},
		GotConn:              func(httptrace.GotConnInfo) { gotConn = time.Now() },
		GotFirstResponseByte: func() { gotFirstByte = time.Now() },
	}
	httpReq = httpReq.WithContext(httptrace.WithClientTrace(httpReq.Context(), trace))

	start := time.Now()
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	transferStart := time.Now()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	timing.Transfer = time.Since(transferStart)
	timing.Total = time.Since(start)
	if !gotConn.IsZero() && !gotFirstByte.IsZero() {
		timing.TTFB = gotFirstByte.Sub(gotConn)
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		Status:      resp.Status,
		Headers:     resp.Header,
		Body:        respBody,
		ContentType: resp.Header.Get("Content-Type"),
		Duration:    timing.Total,
		Size:        int64(len(respBody)),
		Proto:       resp.Proto,
		TLS:         resp.TLS != nil,
		Timing:      timing,
	}, nil
}

// buildBody materializes the active body representation. The returned
// content type is empty when the body carries none of its own.
func buildBody(b *request.Body) ([]byte, string, error) {
	if b == nil {
		return nil, "", nil
	}
	switch b.Type {
	case "", request.BodyNone:
		return nil, "", nil
	case request.BodyRaw:
		return []byte(b.Content), "", nil
	case request.BodyJSON:
		return []byte(b.Content), "application/json", nil
	case request.BodyForm:
		form := url.Values{}
		for k, v := range request.EnabledPairs(b.Form) {
			form.Set(k, v)
		}
		return []byte(form.Encode()), "application/x-www-form-urlencoded", nil
	default:
		return nil, "", fmt.Errorf("unknown body type: %s", b.Type)
	}
}

func applyAuth(httpReq *http.Request, auth *request.Auth, body []byte) error {
	if auth == nil || auth.Type == "" || auth.Type == request.AuthNone {
		return nil
	}
	switch auth.Type {
	case request.AuthBasic:
		if auth.Basic == nil {
			return nil
		}
		encoded := base64.StdEncoding.EncodeToString(
			[]byte(auth.Basic.Username + ":" + auth.Basic.Password),
		)
		httpReq.Header.Set("Authorization", "Basic "+encoded)
	case request.AuthBearer:
		if auth.Bearer == nil || auth.Bearer.Token == "" {
			return nil
		}
		httpReq.Header.Set("Authorization", "Bearer "+auth.Bearer.Token)
	case request.AuthOAuth1:
		if auth.OAuth1 == nil {
			return fmt.Errorf("oauth1 credentials are missing")
		}
		creds := oauth1.Credentials{
			ConsumerKey:     auth.OAuth1.ConsumerKey,
			ConsumerSecret:  auth.OAuth1.ConsumerSecret,
			Token:           auth.OAuth1.Token,
			TokenSecret:     auth.OAuth1.TokenSecret,
			SignatureMethod: auth.OAuth1.SignatureMethod,
		}
		if err := oauth1.Sign(httpReq, body, creds, time.Now()); err != nil {
			return fmt.Errorf("signing request: %w", err)
		}
	case request.AuthOAuth2:
		if auth.OAuth2 != nil && auth.OAuth2.AccessToken != "" {
			httpReq.Header.Set("Authorization", "Bearer "+auth.OAuth2.AccessToken)
		}
	default:
		return fmt.Errorf("unknown auth type: %s", auth.Type)
	}
	return nil
}

// IsJSON reports whether the response body is JSON per its content type.
func (r *Response) IsJSON() bool {
	return strings.Contains(strings.ToLower(r.ContentType), "json")
}
