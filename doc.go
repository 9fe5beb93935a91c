// Package fileguard validates uploaded file content against MIME type
// allow-lists, using content sniffing rather than trusting filenames or
// declared content types.
//
// The guard answers two questions about a byte buffer: what is it really
// (magic-number based detection), and is that type permitted here
// (allow-list evaluation). It exists to defeat extension spoofing, e.g. an
// executable renamed to photo.png, in any service that accepts user uploads.
//
// # Basic Usage
//
//	content, _ := io.ReadAll(upload)
//
//	decision, err := fileguard.ValidateUpload(content, nil, "profile-photo")
//	if err != nil {
//	    // empty input, broken classifier, or bad allow-list
//	}
//	if !decision.Allowed {
//	    // reject with decision.Reason
//	}
//
// Passing a nil allow-list selects the built-in default covering common
// image, video, transcript, JSON, and PDF types. An explicitly empty
// allow-list is a configuration error, not "reject everything".
//
// # Classifiers
//
// Detection is delegated to a [Classifier]. The default [ContentClassifier]
// wraps the mimetype signature database; [SignatureClassifier] is a
// self-contained magic-number implementation with no third-party signature
// data. Swap engines per [Guard]:
//
//	g := fileguard.NewGuard(fileguard.WithClassifier(fileguard.SignatureClassifier{}))
//	decision, err := g.Validate(content, fileguard.ForProfilePhotos(), "avatar")
//
// Unrecognized content is not an error: classifiers resolve it to
// application/octet-stream, which the allow-list then blocks like any
// other unwanted type.
//
// # Error Handling
//
// Failures are typed [GuardError] values, never permissive decisions:
//
//   - [ErrorTypeInput] — the buffer is empty
//   - [ErrorTypeClassifier] — the classification engine itself failed
//   - [ErrorTypeConfig] — the caller supplied an empty allow-list
//
// Use [IsErrorOfType] to map each kind to a transport-level response
// (client error for input, server error for config and classifier).
//
// # Concurrency
//
// All validation is pure and synchronous. A Guard holds no mutable state
// and may be shared freely across goroutines.
package fileguard
