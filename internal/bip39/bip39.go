// Package bip39 implements the BIP-39 subsystem: entropy generation,
// entropy↔mnemonic conversion with its embedded checksum, mnemonic
// validation, and mnemonic→seed derivation. It wraps
// github.com/tyler-smith/go-bip39 rather than reimplementing the
// wordlist/checksum bit-packing by hand.
package bip39

import (
	"fmt"
	"sort"

	"github.com/tyler-smith/go-bip39"

	"github.com/erickherrera/CriptoGualet-sub001/internal/coreerr"
	"github.com/erickherrera/CriptoGualet-sub001/internal/primitive"
)

// ValidEntropyBits are the BIP-39-defined entropy lengths and their
// corresponding mnemonic word counts.
var ValidEntropyBits = map[int]int{
	128: 12,
	160: 15,
	192: 18,
	224: 21,
	256: 24,
}

// GenerateEntropy returns bits/8 bytes of CSPRNG entropy. bits must be one
// of 128/160/192/224/256.
func GenerateEntropy(bits int) ([]byte, error) {
	if _, ok := ValidEntropyBits[bits]; !ok {
		return nil, coreerr.New(coreerr.InvalidInput, fmt.Sprintf("entropy bits must be 128/160/192/224/256, got %d", bits))
	}
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.SystemError, "entropy generation failed", err)
	}
	return entropy, nil
}

// MnemonicFromEntropy maps entropy (with its SHA-256 checksum suffix) to a
// mnemonic phrase via the currently loaded wordlist. The caller must wipe
// entropy once this returns.
func MnemonicFromEntropy(entropy []byte) (string, error) {
	if _, ok := ValidEntropyBits[len(entropy)*8]; !ok {
		return "", coreerr.New(coreerr.InvalidInput, fmt.Sprintf("invalid entropy length %d bytes", len(entropy)))
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", coreerr.Wrap(coreerr.SystemError, "mnemonic encoding failed", err)
	}
	return mnemonic, nil
}

// NewMnemonic generates a fresh mnemonic directly from bits of entropy,
// wiping the intermediate entropy buffer before returning.
func NewMnemonic(bits int) (string, error) {
	entropy, err := GenerateEntropy(bits)
	if err != nil {
		return "", err
	}
	defer primitive.SecureZero(entropy)

	return MnemonicFromEntropy(entropy)
}

// ValidateMnemonic reports whether every word exists in the wordlist and
// the embedded checksum bits match the recomputed SHA-256 checksum of the
// decoded entropy.
func ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}

// SeedFromMnemonic derives the 64-byte seed:
// PBKDF2-HMAC-SHA512(password=mnemonic, salt="mnemonic"‖passphrase,
// iter=2048, dkLen=64). It does not itself validate the mnemonic checksum;
// callers that need strict validation call ValidateMnemonic first (restore
// flows do, via SeedFromMnemonicChecked; Register, which has just generated
// the mnemonic, does not).
func SeedFromMnemonic(mnemonic, passphrase string) ([]byte, error) {
	if mnemonic == "" {
		return nil, coreerr.New(coreerr.InvalidInput, "mnemonic must not be empty")
	}
	seed := primitive.PBKDF2SHA512([]byte(mnemonic), []byte("mnemonic"+passphrase), primitive.IterBIP39Seed, 64)
	return seed, nil
}

// SeedFromMnemonicChecked is SeedFromMnemonic but rejects a mnemonic whose
// checksum does not validate — the restore flow uses this form.
func SeedFromMnemonicChecked(mnemonic, passphrase string) ([]byte, error) {
	if !ValidateMnemonic(mnemonic) {
		return nil, coreerr.New(coreerr.InvalidInput, "mnemonic failed BIP-39 checksum validation")
	}
	return SeedFromMnemonic(mnemonic, passphrase)
}

// Wordlist returns the currently loaded 2048-word list, sorted, for binary
// search lookups.
func Wordlist() []string {
	list := append([]string(nil), bip39.GetWordList()...)
	sort.Strings(list)
	return list
}

// WordInList reports whether word exists in the wordlist via binary search.
func WordInList(word string) bool {
	list := Wordlist()
	i := sort.SearchStrings(list, word)
	return i < len(list) && list[i] == word
}
