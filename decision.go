package fileguard

// Decision is the outcome of one upload validation. It is a plain value,
// constructed fresh per call and owned by the caller; validation failures
// travel on the error channel instead so an error can never be mistaken
// for a permissive Decision.
type Decision struct {
	// Allowed reports whether the detected type is in the allow-list.
	Allowed bool

	// DetectedType is the MIME type sniffed from the content,
	// e.g. "image/png".
	DetectedType string

	// ExpectedTypes is a sorted snapshot of the allow-list the decision
	// was made against. Diagnostic only; membership, not order, carries
	// the meaning.
	ExpectedTypes []string

	// Reason is a human-readable verdict embedding the detected type,
	// "permitted" or "blocked", and the caller's context label.
	Reason string
}

// Summary returns a one-line form of the decision suitable for log output.
func (d Decision) Summary() string {
	if d.Allowed {
		return "✓ " + d.Reason
	}
	return "✗ " + d.Reason
}
