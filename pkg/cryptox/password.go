package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// scrypt cost parameters. These are fixed constants shared by hashing and
// verification; changing them invalidates every stored hash (there is no
// migration path).
const (
	scryptN    = 32768 // CPU/memory cost (2^15)
	scryptR    = 8     // block size
	scryptP    = 1     // parallelism
	keyLength  = 64    // derived digest length in bytes
	saltLength = 16    // salt length in bytes
)

// ErrPasswordMismatch is returned when the password does not match the
// stored hash, or when the stored hash is malformed. Callers must not
// surface the difference.
var ErrPasswordMismatch = errors.New("cryptox: password does not match")

// HashPassword derives a scrypt digest from the password with a fresh
// random salt. The result is encoded as "hex(salt).hex(digest)".
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("cryptox: read salt: %w", err)
	}

	digest, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return "", fmt.Errorf("cryptox: derive key: %w", err)
	}

	return hex.EncodeToString(salt) + "." + hex.EncodeToString(digest), nil
}

// VerifyPassword re-derives the digest from the password and the encoded
// salt and compares it to the stored digest in constant time. A malformed
// encoded hash is treated as a mismatch, never as a silent success.
func VerifyPassword(password, encodedHash string) error {
	saltHex, digestHex, ok := strings.Cut(encodedHash, ".")
	if !ok {
		return ErrPasswordMismatch
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil || len(salt) == 0 {
		return ErrPasswordMismatch
	}
	expected, err := hex.DecodeString(digestHex)
	if err != nil || len(expected) != keyLength {
		return ErrPasswordMismatch
	}

	computed, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return fmt.Errorf("cryptox: derive key: %w", err)
	}

	if subtle.ConstantTimeCompare(computed, expected) == 1 {
		return nil
	}
	return ErrPasswordMismatch
}
