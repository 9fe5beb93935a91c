package fileguard

import (
	"bytes"
	"net/http"
	"strings"
)

// signature describes one magic-number pattern
type signature struct {
	mime   string
	offset int    // offset from start of content
	magic  []byte // bytes to match
}

// signatures is ordered by specificity (most specific first)
var signatures = []signature{
	// Images
	{mime: "image/png", offset: 0, magic: []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	{mime: "image/jpeg", offset: 0, magic: []byte{0xFF, 0xD8, 0xFF}},
	{mime: "image/gif", offset: 0, magic: []byte("GIF87a")},
	{mime: "image/gif", offset: 0, magic: []byte("GIF89a")},
	{mime: "image/webp", offset: 8, magic: []byte("WEBP")}, // inside RIFF container
	{mime: "image/bmp", offset: 0, magic: []byte("BM")},
	{mime: "image/tiff", offset: 0, magic: []byte{0x49, 0x49, 0x2A, 0x00}},
	{mime: "image/tiff", offset: 0, magic: []byte{0x4D, 0x4D, 0x00, 0x2A}},
	{mime: "image/avif", offset: 4, magic: []byte("ftypavif")},
	{mime: "image/heic", offset: 4, magic: []byte("ftypheic")},

	// Documents
	{mime: "application/pdf", offset: 0, magic: []byte("%PDF-")},

	// Transcripts
	{mime: "text/vtt", offset: 0, magic: []byte("WEBVTT")},

	// Video
	{mime: "video/webm", offset: 0, magic: []byte{0x1A, 0x45, 0xDF, 0xA3}}, // EBML, shared with MKV
	{mime: "video/mp4", offset: 4, magic: []byte("ftyp")},
	{mime: "video/quicktime", offset: 4, magic: []byte("moov")},
	{mime: "video/x-flv", offset: 0, magic: []byte("FLV")},

	// Audio
	{mime: "audio/mpeg", offset: 0, magic: []byte("ID3")},
	{mime: "audio/mpeg", offset: 0, magic: []byte{0xFF, 0xFB}},
	{mime: "audio/flac", offset: 0, magic: []byte("fLaC")},
	{mime: "audio/ogg", offset: 0, magic: []byte("OggS")},
	{mime: "audio/wav", offset: 0, magic: []byte("RIFF")}, // refined at offset 8

	// Archives
	{mime: "application/zip", offset: 0, magic: []byte{0x50, 0x4B, 0x03, 0x04}},
	{mime: "application/zip", offset: 0, magic: []byte{0x50, 0x4B, 0x05, 0x06}}, // empty ZIP
	{mime: "application/gzip", offset: 0, magic: []byte{0x1F, 0x8B}},
	{mime: "application/x-tar", offset: 257, magic: []byte("ustar")},
	{mime: "application/x-7z-compressed", offset: 0, magic: []byte{'7', 'z', 0xBC, 0xAF, 0x27, 0x1C}},
	{mime: "application/x-rar-compressed", offset: 0, magic: []byte("Rar!\x1a\x07\x00")},

	// Executables
	{mime: "application/x-msdownload", offset: 0, magic: []byte("MZ")},                    // EXE/DLL
	{mime: "application/x-executable", offset: 0, magic: []byte{0x7F, 'E', 'L', 'F'}},     // ELF
	{mime: "application/x-mach-binary", offset: 0, magic: []byte{0xCF, 0xFA, 0xED, 0xFE}}, // Mach-O 64-bit
	{mime: "application/x-mach-binary", offset: 0, magic: []byte{0xCE, 0xFA, 0xED, 0xFE}}, // Mach-O 32-bit

	// Text/data. Weak signatures, kept after everything else
	{mime: "application/json", offset: 0, magic: []byte("{")},
	{mime: "application/json", offset: 0, magic: []byte("[")},
	{mime: "application/xml", offset: 0, magic: []byte("<?xml")},
	{mime: "text/html", offset: 0, magic: []byte("<!DOCTYPE html")},
	{mime: "text/html", offset: 0, magic: []byte("<!doctype html")},
	{mime: "text/html", offset: 0, magic: []byte("<html")},
}

// SignatureClassifier is a self-contained magic-number Classifier. It
// carries its own signature table and needs no third-party signature
// database, at the cost of covering fewer formats than ContentClassifier.
type SignatureClassifier struct{}

// Classify returns the MIME type matched from the signature table, falling
// back to http.DetectContentType when no signature matches. It never
// fails; unmatched content resolves to whatever the fallback reports,
// application/octet-stream at worst.
func (SignatureClassifier) Classify(data []byte) (string, error) {
	if mime := matchSignature(data); mime != "" {
		return refineMatch(data, mime), nil
	}
	return normalizeMIME(http.DetectContentType(data)), nil
}

func matchSignature(data []byte) string {
	for _, sig := range signatures {
		if sig.offset+len(sig.magic) > len(data) {
			continue
		}
		if bytes.Equal(data[sig.offset:sig.offset+len(sig.magic)], sig.magic) {
			return sig.mime
		}
	}
	return ""
}

// refineMatch disambiguates formats that share leading bytes
func refineMatch(data []byte, initial string) string {
	switch initial {
	case "audio/wav", "image/webp":
		// RIFF container, the real format tag sits at offset 8
		if len(data) >= 12 {
			switch string(data[8:12]) {
			case "WAVE":
				return "audio/wav"
			case "WEBP":
				return "image/webp"
			case "AVI ":
				return "video/x-msvideo"
			}
		}
		return initial

	case "video/mp4":
		// ftyp brand distinguishes the MP4 family
		if len(data) >= 12 {
			switch string(data[8:12]) {
			case "M4A ":
				return "audio/mp4"
			case "qt  ":
				return "video/quicktime"
			case "3gp4", "3gp5", "3gp6":
				return "video/3gpp"
			}
		}
		return initial

	case "application/zip":
		// Office documents are ZIP containers with well-known entry paths
		// near the start. A heuristic scan is enough here; full detection
		// would require reading the ZIP directory.
		head := string(data)
		switch {
		case strings.Contains(head, "[Content_Types]") || strings.Contains(head, "word/"):
			return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
		case strings.Contains(head, "xl/"):
			return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		case strings.Contains(head, "ppt/"):
			return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
		}
		return initial

	default:
		return initial
	}
}
