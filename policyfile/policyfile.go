// Package policyfile loads per-context upload allow-lists from YAML.
//
// A policy file maps upload contexts to the MIME types permitted there,
// with an optional default list for contexts that have no entry:
//
//	default:
//	  - image/png
//	  - image/jpeg
//	contexts:
//	  document-upload:
//	    - application/pdf
//	  transcript-upload:
//	    - text/vtt
//	    - text/plain
//
// The file never reaches the validation core; callers resolve a context
// to its allow-list with AllowlistFor and pass the result on.
package policyfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is a parsed policy file.
type File struct {
	// Default applies to contexts without their own entry. When empty,
	// resolution falls through to the guard's built-in defaults.
	Default []string `yaml:"default"`

	// Contexts maps an upload context label to its allow-list.
	Contexts map[string][]string `yaml:"contexts"`
}

// Parse parses and validates policy file content. A context declared with
// an empty allow-list is rejected here, matching the guard's rule that an
// explicitly empty list is a misconfiguration rather than "deny all".
func Parse(data []byte) (*File, error) {
	f := &File{}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("invalid policy file: %w", err)
	}
	for name, allow := range f.Contexts {
		if len(allow) == 0 {
			return nil, fmt.Errorf("policy context %q has an empty allowlist", name)
		}
	}
	return f, nil
}

// Load reads and parses a policy file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}
	return Parse(data)
}

// AllowlistFor resolves the allow-list for an upload context: the
// context's own entry, else the file default, else nil so the caller
// falls back to the guard's built-in allow-list. The returned slice is a
// fresh copy.
func (f *File) AllowlistFor(context string) []string {
	if allow, ok := f.Contexts[context]; ok {
		return append([]string(nil), allow...)
	}
	if len(f.Default) > 0 {
		return append([]string(nil), f.Default...)
	}
	return nil
}

// ContextNames returns the contexts declared in the file.
func (f *File) ContextNames() []string {
	names := make([]string, 0, len(f.Contexts))
	for name := range f.Contexts {
		names = append(names, name)
	}
	return names
}
