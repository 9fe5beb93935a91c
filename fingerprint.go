package fileguard

import (
	"crypto/md5" //nolint:gosec // MD5 offered for legacy audit trails, not security
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"

	"github.com/cespare/xxhash/v2"
)

// ChecksumAlgorithm identifies a supported checksum algorithm
type ChecksumAlgorithm string

const (
	ChecksumXXHash ChecksumAlgorithm = "xxhash"
	ChecksumSHA256 ChecksumAlgorithm = "sha256"
	ChecksumMD5    ChecksumAlgorithm = "md5"
)

// NewHasher creates a new hash.Hash for the given algorithm.
// Returns an error if the algorithm is not supported.
func NewHasher(algorithm ChecksumAlgorithm) (hash.Hash, error) {
	switch algorithm {
	case ChecksumXXHash:
		return xxhash.New(), nil
	case ChecksumSHA256:
		return sha256.New(), nil
	case ChecksumMD5:
		return md5.New(), nil //nolint:gosec // MD5 offered for legacy audit trails, not security
	default:
		return nil, fmt.Errorf("unsupported checksum algorithm: %s", algorithm)
	}
}

// Checksum reads from r and returns the hex-encoded checksum using the
// specified algorithm.
func Checksum(r io.Reader, algorithm ChecksumAlgorithm) (string, error) {
	h, err := NewHasher(algorithm)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("failed to calculate checksum: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Fingerprint returns a short, stable identifier for the content, for
// correlating upload decisions in logs and audit trails. Not a
// cryptographic hash.
func Fingerprint(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
