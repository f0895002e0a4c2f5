package utils

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Password hashing parameters. Iterations match the passlib
// pbkdf2_sha256 default so hashes migrated from earlier deployments
// keep verifying.
const (
	pbkdf2Iterations = 29000
	pbkdf2SaltLen    = 16
	pbkdf2KeyLen     = 32
	pbkdf2Prefix     = "pbkdf2-sha256"
)

// ErrMalformedPasswordHash is returned by VerifyPassword when the stored
// encoding cannot be split into its prefix, iteration count, salt, and
// digest parts.
var ErrMalformedPasswordHash = errors.New("malformed password hash")

// HashPassword derives a PBKDF2-SHA256 digest of password with a fresh
// random salt and returns the self-describing encoding
//
//	pbkdf2-sha256$<iterations>$<salt-b64>$<digest-b64>
//
// Returns an error only if the OS CSPRNG fails.
func HashPassword(password string) (string, error) {
	salt := make([]byte, pbkdf2SaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("error generating password salt: %w", err)
	}

	digest := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, pbkdf2KeyLen, sha256.New)

	encoded := strings.Join([]string{
		pbkdf2Prefix,
		strconv.Itoa(pbkdf2Iterations),
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	}, "$")

	return encoded, nil
}

// VerifyPassword re-derives the digest of password using the parameters
// stored in encoded and compares the two in constant time.
//
// Returns (false, ErrMalformedPasswordHash) when encoded does not follow
// the format produced by [HashPassword].
func VerifyPassword(password, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 4 || parts[0] != pbkdf2Prefix {
		return false, ErrMalformedPasswordHash
	}

	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations < 1 {
		return false, ErrMalformedPasswordHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil {
		return false, ErrMalformedPasswordHash
	}

	want, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return false, ErrMalformedPasswordHash
	}

	got := pbkdf2.Key([]byte(password), salt, iterations, len(want), sha256.New)

	return hmac.Equal(got, want), nil
}
