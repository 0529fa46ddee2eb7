package tls

import (
	"testing"

	"github.com/tkaraca/restel/internal/core/request"
)

func TestBuild_Nil(t *testing.T) {
	cfg, err := Build(nil)
	if err != nil {
		t.Fatalf("Build(nil) failed: %v", err)
	}
	if cfg != nil {
		t.Error("expected nil config for nil options")
	}

	cfg, err = Build(&request.TLS{})
	if err != nil {
		t.Fatalf("Build(empty) failed: %v", err)
	}
	if cfg != nil {
		t.Error("expected nil config for empty options")
	}
}

func TestBuild_Insecure(t *testing.T) {
	cfg, err := Build(&request.TLS{InsecureSkipVerify: true})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if cfg == nil || !cfg.InsecureSkipVerify {
		t.Error("expected InsecureSkipVerify to be set")
	}
}

func TestBuild_MissingCA(t *testing.T) {
	_, err := Build(&request.TLS{CAFile: "/nonexistent/ca.pem"})
	if err == nil {
		t.Error("expected error for missing CA file")
	}
}

func TestBuild_MissingClientCert(t *testing.T) {
	_, err := Build(&request.TLS{CertFile: "/nonexistent/cert.pem", KeyFile: "/nonexistent/key.pem"})
	if err == nil {
		t.Error("expected error for missing client cert")
	}
}
