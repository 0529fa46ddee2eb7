// Package tls builds crypto/tls configurations from the per-request
// TLS options, including the certificate verification toggle.
package tls

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	"github.com/tkaraca/restel/internal/core/request"
)

// Build creates a *tls.Config from request TLS options. A nil or empty
// options struct yields nil, meaning library defaults.
func Build(opts *request.TLS) (*tls.Config, error) {
	if opts == nil || isEmpty(opts) {
		return nil, nil
	}

	cfg := &tls.Config{
		InsecureSkipVerify: opts.InsecureSkipVerify,
	}

	if opts.CertFile != "" && opts.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(opts.CertFile, opts.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("loading client cert: %w", err)
		}
		cfg.Certificates = []tls.Certificate{cert}
	}

	if opts.CAFile != "" {
		caCert, err := os.ReadFile(opts.CAFile)
		if err != nil {
			return nil, fmt.Errorf("reading CA cert: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA cert")
		}
		cfg.RootCAs = pool
	}

	return cfg, nil
}

func isEmpty(opts *request.TLS) bool {
	return !opts.InsecureSkipVerify && opts.CAFile == "" && opts.CertFile == "" && opts.KeyFile == ""
}
