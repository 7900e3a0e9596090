// Package hash provides the file hasher adapter on xxhash.
package hash

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/ugle/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileHasher = (*Hasher)(nil)

// Hasher computes xxhash64 digests of file contents.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// HashFile returns the hex xxhash64 digest of the file's contents.
func (h *Hasher) HashFile(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // path is produced by the closure builder
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open artifact"), "path", path)
	}
	defer f.Close() //nolint:errcheck // best effort close in defer

	digest := xxhash.New()
	if _, err := io.Copy(digest, f); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to hash artifact"), "path", path)
	}

	return fmt.Sprintf("%016x", digest.Sum64()), nil
}
