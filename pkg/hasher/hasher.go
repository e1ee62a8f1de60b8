package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// Algorithm is the tag prefixed to digests stored in the manifest
const Algorithm = "sha256"

// DefaultBufferSize is the chunk size used when streaming files
const DefaultBufferSize = 64 * 1024

// Hasher computes content fingerprints by streaming files in fixed-size chunks
type Hasher struct {
	bufferSize int
}

// New creates a hasher. A non-positive size falls back to DefaultBufferSize.
func New(bufferSize int) *Hasher {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Hasher{bufferSize: bufferSize}
}

// File returns the lowercase hex SHA-256 digest of the file at path
func (h *Hasher) File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	digest, err := h.Reader(f)
	if err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return digest, nil
}

// Reader returns the lowercase hex SHA-256 digest of everything read from r
func (h *Hasher) Reader(r io.Reader) (string, error) {
	sum := sha256.New()
	buf := make([]byte, h.bufferSize)
	if _, err := io.CopyBuffer(sum, r, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(sum.Sum(nil)), nil
}

// Tag returns the algorithm-tagged form stored in the manifest
func Tag(digest string) string {
	return Algorithm + ":" + digest
}

// Untag strips the algorithm prefix, if present
func Untag(tagged string) string {
	return strings.TrimPrefix(tagged, Algorithm+":")
}
