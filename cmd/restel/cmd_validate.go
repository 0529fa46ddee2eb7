package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tkaraca/restel/internal/core/request"
)

func validateCmd() {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: restel validate <file.restel.yaml> [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Validate request YAML files.\n\n")
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  restel validate get-users.restel.yaml\n")
		fmt.Fprintf(os.Stderr, "  restel validate *.restel.yaml\n")
	}

	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: at least one file path is required\n\n")
		fs.Usage()
		os.Exit(1)
	}

	hasErrors := false
	for _, path := range fs.Args() {
		if err := validateFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", path, err)
			hasErrors = true
		} else {
			fmt.Printf("OK   %s\n", path)
		}
	}

	if hasErrors {
		os.Exit(1)
	}
}

func validateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	if len(data) == 0 {
		return fmt.Errorf("file is empty")
	}

	req, err := request.LoadBytes(data)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	// Structural warnings beyond what Validate enforces.
	var warnings []string

	if req.Name == "" {
		warnings = append(warnings, "missing request name")
	}
	for _, h := range req.Headers {
		if h.Enabled && h.Key == "" {
			warnings = append(warnings, "enabled header with empty key")
			break
		}
	}
	for _, p := range req.Params {
		if p.Enabled && p.Key == "" {
			warnings = append(warnings, "enabled query parameter with empty key")
			break
		}
	}

	if len(warnings) > 0 {
		return fmt.Errorf("validation warnings:\n  - %s", strings.Join(warnings, "\n  - "))
	}
	return nil
}
