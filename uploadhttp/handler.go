// Package uploadhttp binds the fileguard core to gin upload routes.
//
// The handler owns everything the core deliberately does not: reading the
// multipart file into memory, bounding its size, translating guard
// failures into HTTP status codes, and logging the outcome. The core
// never sees HTTP.
package uploadhttp

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pinkycollie/fileguard"
	"github.com/pinkycollie/fileguard/policyfile"
)

// DefaultFormField is the multipart field the handler reads when none is
// configured.
const DefaultFormField = "file"

// Options configures an upload handler.
type Options struct {
	// Guard performs detection and policy evaluation. Required.
	Guard *fileguard.Guard

	// Context labels this upload site in decisions, e.g. "profile-photo".
	// Empty uses the guard's default label.
	Context string

	// Allowlist overrides the guard's default allow-list. nil keeps the
	// guard defaults; a Policies watcher, when set, wins over both.
	Allowlist []string

	// Policies resolves the allow-list from a live policy file.
	Policies *policyfile.Watcher

	// MaxUploadSize caps the upload in bytes. Zero means no cap beyond
	// what the surrounding server enforces.
	MaxUploadSize int64

	// FormField is the multipart field name, DefaultFormField when empty.
	FormField string

	// Logger receives one entry per validated upload. Defaults to a nop
	// logger.
	Logger *zap.Logger
}

// Handler returns a gin handler that validates the uploaded file and
// responds with the decision.
//
// Responses: 200 with {"status": "accepted", "type": ...} when permitted;
// 400 for a missing or empty file and for blocked types (the body carries
// Decision.Reason); 413 when the size cap is exceeded; 500 when the guard
// is misconfigured or its classifier fails.
func Handler(opts Options) gin.HandlerFunc {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	field := opts.FormField
	if field == "" {
		field = DefaultFormField
	}

	return func(c *gin.Context) {
		header, err := c.FormFile(field)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
			return
		}

		if opts.MaxUploadSize > 0 && header.Size > opts.MaxUploadSize {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds the upload size limit"})
			return
		}

		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
			return
		}
		defer file.Close()

		content, err := io.ReadAll(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
			return
		}

		allowlist := opts.Allowlist
		if opts.Policies != nil {
			allowlist = opts.Policies.AllowlistFor(contextLabel(opts))
		}

		decision, err := opts.Guard.Validate(content, allowlist, contextLabel(opts))
		if err != nil {
			status := http.StatusInternalServerError
			if fileguard.IsErrorOfType(err, fileguard.ErrorTypeInput) {
				status = http.StatusBadRequest
			}
			log.Warn("upload validation failed",
				zap.String("context", contextLabel(opts)),
				zap.String("filename", header.Filename),
				zap.Error(err),
			)
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		log.Info("upload validated",
			zap.String("context", contextLabel(opts)),
			zap.String("filename", header.Filename),
			zap.String("type", decision.DetectedType),
			zap.Bool("allowed", decision.Allowed),
			zap.Int64("size", header.Size),
			zap.String("fingerprint", fileguard.Fingerprint(content)),
		)

		if !decision.Allowed {
			c.JSON(http.StatusBadRequest, gin.H{"error": decision.Reason})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "accepted",
			"type":   decision.DetectedType,
		})
	}
}

func contextLabel(opts Options) string {
	if opts.Context != "" {
		return opts.Context
	}
	return fileguard.DefaultContext
}

// Register mounts the upload handler on router at path.
func Register(router gin.IRouter, path string, opts Options) {
	router.POST(path, Handler(opts))
}
