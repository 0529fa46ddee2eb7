package request

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Ext is the request file suffix.
const Ext = ".restel.yaml"

// LoadFile loads a request configuration from a YAML file.
func LoadFile(path string) (*Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request file: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes parses a request configuration from YAML bytes.
func LoadBytes(data []byte) (*Request, error) {
	var req Request
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("parsing request file: %w", err)
	}
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	if req.Method == "" {
		req.Method = "GET"
	}
	return &req, nil
}

// SaveFile writes a request configuration to a YAML file.
func SaveFile(req *Request, path string) error {
	data, err := yaml.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing request file: %w", err)
	}
	return nil
}

// FileEntry is a request file found in the workspace directory.
type FileEntry struct {
	Path    string
	Name    string // file name without the suffix
	Method  string
	URL     string
	LoadErr error
}

// ListDir returns the request files in dir, sorted by name. Files that
// fail to parse are listed with LoadErr set so the UI can show them.
func ListDir(dir string) ([]FileEntry, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+Ext))
	if err != nil {
		return nil, fmt.Errorf("globbing request files: %w", err)
	}
	sort.Strings(matches)

	entries := make([]FileEntry, 0, len(matches))
	for _, path := range matches {
		e := FileEntry{
			Path: path,
			Name: strings.TrimSuffix(filepath.Base(path), Ext),
		}
		req, err := LoadFile(path)
		if err != nil {
			e.LoadErr = err
		} else {
			e.Method = req.Method
			e.URL = req.URL
		}
		entries = append(entries, e)
	}
	return entries, nil
}
