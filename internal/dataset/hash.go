package dataset

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/blake2b"
)

// ComputeFileHash computes a BLAKE2b-256 hash of a dataset file's
// contents, used for import staleness detection. A missing file hashes
// as empty content.
func ComputeFileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			h := blake2b.Sum256(nil)
			return hex.EncodeToString(h[:]), nil
		}
		return "", fmt.Errorf("opening dataset file: %w", err)
	}
	defer f.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return "", fmt.Errorf("initializing hash: %w", err)
	}
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing dataset file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
