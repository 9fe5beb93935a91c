package fileguard

import (
	"fmt"
	"strings"

	"github.com/gobeaver/beaver-kit/config"
)

// Size constants for readable size configuration
const (
	KB = int64(1024)
	MB = KB * 1024
)

// Config carries the environment-driven settings consumed by the outer
// surfaces (HTTP binding, CLI). The core guard itself reads no
// environment.
type Config struct {
	// Comma-separated allow-list. Empty means the built-in defaults.
	AllowedMimeTypes string `env:"FILEGUARD_ALLOWED_MIME_TYPES"`

	// Classification engine: "content" (mimetype database) or "signature"
	// (built-in magic-number table)
	Classifier string `env:"FILEGUARD_CLASSIFIER,default:content"`

	// Context label stamped into decisions when the handler has none
	DefaultContext string `env:"FILEGUARD_DEFAULT_CONTEXT,default:upload"`

	// Upload size cap enforced by the HTTP binding, in bytes
	MaxUploadSize int64 `env:"FILEGUARD_MAX_UPLOAD_SIZE,default:10485760"` // 10MB default

	// Optional YAML policy file with per-context allow-lists
	PolicyFile string `env:"FILEGUARD_POLICY_FILE"`
}

// GetConfig returns config loaded from environment
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Allowlist returns the configured allow-list, or nil when none is set so
// callers fall through to the built-in defaults.
func (c *Config) Allowlist() []string {
	if strings.TrimSpace(c.AllowedMimeTypes) == "" {
		return nil
	}
	parts := strings.Split(c.AllowedMimeTypes, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NewGuard builds a Guard from the configured classifier and allow-list.
func (c *Config) NewGuard() (*Guard, error) {
	classifier, err := ClassifierByName(c.Classifier)
	if err != nil {
		return nil, err
	}
	opts := []Option{WithClassifier(classifier)}
	if allow := c.Allowlist(); allow != nil {
		opts = append(opts, WithDefaultAllowlist(allow...))
	}
	return NewGuard(opts...), nil
}

// ClassifierByName resolves a classifier selection string to an engine.
func ClassifierByName(name string) (Classifier, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "content":
		return ContentClassifier{}, nil
	case "signature":
		return SignatureClassifier{}, nil
	default:
		return nil, NewGuardError(ErrorTypeConfig, fmt.Sprintf("unknown classifier: %s", name))
	}
}
