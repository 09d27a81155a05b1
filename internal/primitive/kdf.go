package primitive

import (
	"crypto/sha256"
	"crypto/sha512"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2 iteration defaults.
const (
	// IterWalletKey is used for wallet-key and DB-key derivation, per
	// OWASP 2023 guidance.
	IterWalletKey = 600_000
	// IterBIP39Seed is fixed by BIP-39 itself, never configurable.
	IterBIP39Seed = 2048
	// IterLoginPassword is used for the local login password hash.
	IterLoginPassword = 100_000
)

// PBKDF2SHA256 derives dkLen bytes using PBKDF2-HMAC-SHA256.
func PBKDF2SHA256(password, salt []byte, iter, dkLen int) []byte {
	return pbkdf2.Key(password, salt, iter, dkLen, sha256.New)
}

// PBKDF2SHA512 derives dkLen bytes using PBKDF2-HMAC-SHA512. This is the
// function BIP-39 seed derivation uses.
func PBKDF2SHA512(password, salt []byte, iter, dkLen int) []byte {
	return pbkdf2.Key(password, salt, iter, dkLen, sha512.New)
}
