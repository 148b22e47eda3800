package security

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const keyDerivationSalt = "cycleforecast.kdf.v1"

var (
	errEmptySecret  = errors.New("secret must not be empty")
	errEmptyPurpose = errors.New("key purpose must not be empty")
)

// DeriveKey expands the process secret into an independent key per purpose.
func DeriveKey(secret []byte, purpose string, size int) ([]byte, error) {
	if len(secret) == 0 {
		return nil, errEmptySecret
	}
	purpose = strings.TrimSpace(purpose)
	if purpose == "" {
		return nil, errEmptyPurpose
	}
	if size < 1 {
		return nil, errNegativeLength
	}

	reader := hkdf.New(sha256.New, secret, []byte(keyDerivationSalt), []byte(purpose))
	key := make([]byte, size)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("derive %s key: %w", purpose, err)
	}
	return key, nil
}
