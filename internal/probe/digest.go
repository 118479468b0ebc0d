package probe

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// FileDigest hashes the file at path and returns the digest with the
// file size in bytes. The digest identifies the artifact for cache keys
// and change detection; it is not cryptographic.
func FileDigest(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open model file: %w", err)
	}
	defer f.Close()

	h := xxhash.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, fmt.Errorf("failed to hash model file: %w", err)
	}

	return fmt.Sprintf("%016x", h.Sum64()), n, nil
}
