package fileguard

// Media type groups used by the builder helpers.
var (
	imageTypes = []string{
		"image/png",
		"image/jpeg",
		"image/gif",
		"image/webp",
	}
	videoTypes = []string{
		"video/mp4",
		"video/webm",
	}
	audioTypes = []string{
		"audio/mpeg",
		"audio/ogg",
		"audio/wav",
		"audio/flac",
	}
	documentTypes = []string{
		"application/pdf",
		"text/plain",
	}
	transcriptTypes = []string{
		"text/vtt",
		"text/plain",
		"application/json",
	}
)

// PolicyBuilder provides a fluent API for constructing allow-lists
type PolicyBuilder struct {
	types []string
}

// NewPolicy creates an empty allow-list builder.
func NewPolicy() *PolicyBuilder {
	return &PolicyBuilder{}
}

// Allow adds specific MIME types (e.g. "image/png"). Wildcard patterns
// like "image/*" are honored during evaluation.
func (b *PolicyBuilder) Allow(mimeTypes ...string) *PolicyBuilder {
	b.types = append(b.types, mimeTypes...)
	return b
}

// AllowImages adds the common web image types
func (b *PolicyBuilder) AllowImages() *PolicyBuilder {
	return b.Allow(imageTypes...)
}

// AllowVideo adds the common web video types
func (b *PolicyBuilder) AllowVideo() *PolicyBuilder {
	return b.Allow(videoTypes...)
}

// AllowAudio adds the common audio types
func (b *PolicyBuilder) AllowAudio() *PolicyBuilder {
	return b.Allow(audioTypes...)
}

// AllowDocuments adds PDF and plain text
func (b *PolicyBuilder) AllowDocuments() *PolicyBuilder {
	return b.Allow(documentTypes...)
}

// AllowTranscripts adds the transcript formats (WebVTT, plain text, JSON)
func (b *PolicyBuilder) AllowTranscripts() *PolicyBuilder {
	return b.Allow(transcriptTypes...)
}

// AllowAll permits every type. Useful only when the guard is run for its
// detection side effects.
func (b *PolicyBuilder) AllowAll() *PolicyBuilder {
	return b.Allow("*/*")
}

// Build returns the accumulated allow-list, normalized and deduplicated,
// ready to pass to ValidateUpload or Guard.Validate.
func (b *PolicyBuilder) Build() []string {
	return newAllowSet(b.types).list()
}

// --- Presets ---

// ForProfilePhotos returns an allow-list for avatar and profile photo
// uploads.
func ForProfilePhotos() []string {
	return NewPolicy().AllowImages().Build()
}

// ForDocuments returns an allow-list for document uploads.
func ForDocuments() []string {
	return NewPolicy().AllowDocuments().Build()
}

// ForTranscripts returns an allow-list for transcript and caption uploads.
func ForTranscripts() []string {
	return NewPolicy().AllowTranscripts().Build()
}

// ForMedia returns an allow-list for audio and video uploads.
func ForMedia() []string {
	return NewPolicy().AllowAudio().AllowVideo().Build()
}
