// Package primitive implements the cryptographic primitive layer:
// hashes, HMAC, PBKDF2, authenticated encryption, a CSPRNG wrapper, secure
// memory wiping, constant-time comparison, the secp256k1 signing context,
// and TOTP. Every function that touches private keys, seeds, passwords, or
// derived keys wipes its locals on all exit paths, including error returns.
package primitive

import (
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // HMAC-SHA1 is mandated by RFC 6238 TOTP, not used for signatures
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // required for Hash160 (P2PKH), no modern replacement

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// SHA256 returns the 32-byte SHA-256 digest of data.
func SHA256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// DoubleSHA256 returns SHA256(SHA256(data)), the Bitcoin hashing convention
// used for Base58Check checksums, sighashes, and txids.
func DoubleSHA256(data []byte) [32]byte {
	first := sha256.Sum256(data)
	return sha256.Sum256(first[:])
}

// RIPEMD160 returns the 20-byte RIPEMD-160 digest of data.
func RIPEMD160(data []byte) [20]byte {
	h := ripemd160.New()
	h.Write(data)
	var out [20]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Hash160 returns RIPEMD160(SHA256(data)), the public-key-hash primitive
// for Bitcoin-family addresses and P2PKH scripts.
func Hash160(data []byte) [20]byte {
	sum := sha256.Sum256(data)
	return RIPEMD160(sum[:])
}

// Keccak256 returns the original Keccak-256 digest (pad10*1 with the 0x01
// domain byte, NOT NIST SHA3-256). Delegated to go-ethereum's crypto
// package, which implements the pre-standardization Keccak variant
// Ethereum uses for addresses and sighashes.
func Keccak256(data ...[]byte) [32]byte {
	var out [32]byte
	copy(out[:], ethcrypto.Keccak256(data...))
	return out
}

// HMACSHA1 computes HMAC-SHA-1(key, data). Used only by TOTP (RFC 6238).
func HMACSHA1(key, data []byte) []byte {
	return runHMAC(sha1.New, key, data)
}

// HMACSHA256 computes HMAC-SHA-256(key, data).
func HMACSHA256(key, data []byte) []byte {
	return runHMAC(sha256.New, key, data)
}

// HMACSHA512 computes HMAC-SHA-512(key, data). Used for BIP-32 master-key
// generation ("Bitcoin seed") and child derivation.
func HMACSHA512(key, data []byte) []byte {
	return runHMAC(sha512.New, key, data)
}

func runHMAC(newHash func() hash.Hash, key, data []byte) []byte {
	mac := hmac.New(newHash, key)
	mac.Write(data)
	return mac.Sum(nil)
}
