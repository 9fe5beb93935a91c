package fileguard

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Classifier is the content classification capability the guard is built
// on. Implementations inspect leading bytes and return a single best-guess
// MIME type string. Content that matches no known signature must resolve
// to a generic type such as application/octet-stream; an error return is
// reserved for the engine itself failing to operate.
//
// Implementations must be stateless and safe for concurrent use.
type Classifier interface {
	Classify(data []byte) (string, error)
}

// ContentClassifier is the default Classifier, backed by the mimetype
// signature database.
type ContentClassifier struct{}

// Classify returns the MIME type detected from the leading bytes of data.
func (ContentClassifier) Classify(data []byte) (string, error) {
	return mimetype.Detect(data).String(), nil
}

// normalizeMIME strips any parameter suffix (e.g. "; charset=utf-8") and
// lowercases the type so allow-list membership compares bare type/subtype
// strings.
func normalizeMIME(mime string) string {
	if idx := strings.Index(mime, ";"); idx > 0 {
		mime = mime[:idx]
	}
	return strings.ToLower(strings.TrimSpace(mime))
}
