package envfile

import (
	"encoding/hex"
	"io"
	"os"

	"golang.org/x/crypto/sha3"

	"github.com/nao1215/vcastgen/internal/model"
)

// Fingerprint returns the SHA3-256 digest of the file at path as lowercase hex.
// The history database stores it so that runs against a changed environment
// can be told apart.
func Fingerprint(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided environment file is intentional
	if err != nil {
		return "", model.NewConfigurationError("fingerprint environment file", path, err)
	}
	defer f.Close()

	h := sha3.New256()
	if _, err := io.Copy(h, f); err != nil {
		return "", model.NewConfigurationError("fingerprint environment file", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
