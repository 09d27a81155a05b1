// Package auth implements password hashing, rate limiting, email
// verification codes, and password-strength validation. Session lifecycle
// itself lives in internal/vault (it's vault-resident state); this package
// is the stateless and rate-limiting logic layered on top of it.
package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/erickherrera/CriptoGualet-sub001/internal/coreerr"
	"github.com/erickherrera/CriptoGualet-sub001/internal/primitive"
)

const (
	passwordHashIter = primitive.IterLoginPassword
	passwordSaltLen  = 16
	passwordDKLen    = 32
)

// HashPassword returns the canonical "pbkdf2-sha256$<iter>$<saltB64>$<dkB64>"
// encoding of password.
func HashPassword(password string) (string, error) {
	salt, err := primitive.RandomBytes(passwordSaltLen)
	if err != nil {
		return "", coreerr.Wrap(coreerr.CryptoFailure, "salt generation failed", err)
	}
	dk := primitive.PBKDF2SHA256([]byte(password), salt, passwordHashIter, passwordDKLen)
	return fmt.Sprintf("pbkdf2-sha256$%d$%s$%s", passwordHashIter,
		base64.StdEncoding.EncodeToString(salt), base64.StdEncoding.EncodeToString(dk)), nil
}

// VerifyPassword checks password against encoded in constant time.
func VerifyPassword(password, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 4 || parts[0] != "pbkdf2-sha256" {
		return false, coreerr.New(coreerr.InvalidInput, "malformed password hash encoding")
	}
	iter, err := strconv.Atoi(parts[1])
	if err != nil {
		return false, coreerr.Wrap(coreerr.InvalidInput, "malformed iteration count", err)
	}
	salt, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return false, coreerr.Wrap(coreerr.InvalidInput, "malformed salt", err)
	}
	want, err := base64.StdEncoding.DecodeString(parts[3])
	if err != nil {
		return false, coreerr.Wrap(coreerr.InvalidInput, "malformed derived key", err)
	}

	got := primitive.PBKDF2SHA256([]byte(password), salt, iter, len(want))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// ValidateUsername enforces the username shape: 3-50 characters from
// [A-Za-z0-9_-].
func ValidateUsername(username string) error {
	if len(username) < 3 || len(username) > 50 {
		return coreerr.New(coreerr.InvalidInput, "username must be 3-50 characters")
	}
	for _, r := range username {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return coreerr.New(coreerr.InvalidInput, "username may only contain letters, digits, underscores, and hyphens")
		}
	}
	return nil
}

// ValidatePasswordStrength requires at least 8 characters, with at least
// one uppercase, one lowercase, one digit, and one symbol.
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return coreerr.New(coreerr.InvalidInput, "password must be at least 8 characters")
	}
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSymbol {
		return coreerr.New(coreerr.InvalidInput, "password must include an uppercase letter, a lowercase letter, a digit, and a symbol")
	}
	return nil
}
