package fileguard

import "fmt"

// Guard binds a Classifier to a default allow-list. The zero-configured
// guard from NewGuard uses ContentClassifier and the built-in defaults.
// A Guard is immutable after construction and safe for concurrent use.
type Guard struct {
	classifier Classifier
	defaults   allowSet
}

// Option configures a Guard
type Option func(*Guard)

// WithClassifier swaps the content classification engine.
func WithClassifier(c Classifier) Option {
	return func(g *Guard) {
		g.classifier = c
	}
}

// WithDefaultAllowlist replaces the built-in default allow-list used when
// Validate is called with a nil list.
func WithDefaultAllowlist(types ...string) Option {
	return func(g *Guard) {
		g.defaults = newAllowSet(types)
	}
}

// NewGuard creates a guard with the given options.
func NewGuard(opts ...Option) *Guard {
	g := &Guard{
		classifier: ContentClassifier{},
		defaults:   defaultAllowSet,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Detect reports the MIME type of blob based on its content.
// Fails with an input error on an empty blob, before the classifier is
// consulted, and with a classifier error when the engine itself breaks.
// On success the returned type is never empty.
func (g *Guard) Detect(blob []byte) (string, error) {
	if len(blob) == 0 {
		return "", errEmptyInput()
	}
	mime, err := g.classifier.Classify(blob)
	if err != nil {
		return "", NewGuardError(ErrorTypeClassifier, fmt.Sprintf("content classification failed: %v", err))
	}
	mime = normalizeMIME(mime)
	if mime == "" {
		return "", NewGuardError(ErrorTypeClassifier, "classifier returned an empty type")
	}
	return mime, nil
}

// Validate detects the content type of blob and evaluates it against the
// allow-list. A nil allowlist selects the guard's default list; a non-nil
// empty one is a config error. An empty context falls back to
// DefaultContext.
//
// Detection failures propagate unchanged. Once detection succeeds a
// Decision is always returned, whether or not the type is permitted.
func (g *Guard) Validate(blob []byte, allowlist []string, context string) (Decision, error) {
	if len(blob) == 0 {
		return Decision{}, errEmptyInput()
	}
	if context == "" {
		context = DefaultContext
	}

	resolved := g.defaults
	if allowlist != nil {
		resolved = newAllowSet(allowlist)
		if resolved.empty() {
			return Decision{}, NewGuardError(ErrorTypeConfig, "empty allowlist: pass nil to use the default allow-list")
		}
	}

	detected, err := g.Detect(blob)
	if err != nil {
		return Decision{}, err
	}

	allowed := resolved.contains(detected)
	verdict := "blocked"
	if allowed {
		verdict = "permitted"
	}

	return Decision{
		Allowed:       allowed,
		DetectedType:  detected,
		ExpectedTypes: resolved.list(),
		Reason:        fmt.Sprintf("Type '%s' %s for %s", detected, verdict, context),
	}, nil
}

// defaultGuard backs the package-level entry points.
var defaultGuard = NewGuard()

// DetectFileType detects the real MIME type of blob from its content using
// the default guard.
func DetectFileType(blob []byte) (string, error) {
	return defaultGuard.Detect(blob)
}

// ValidateUpload validates blob against the allow-list using the default
// guard. See Guard.Validate for the allow-list and context semantics.
func ValidateUpload(blob []byte, allowlist []string, context string) (Decision, error) {
	return defaultGuard.Validate(blob, allowlist, context)
}
