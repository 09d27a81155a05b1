package primitive

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
)

const (
	// KeySize is the required AES-256 key length.
	KeySize = 32
	// NonceSize is the GCM IV length (96 bits).
	NonceSize = 12
	// TagSize is the GCM authentication tag length (128 bits).
	TagSize = 16
)

// ErrCiphertextTooShort is returned when a blob is shorter than IV+TAG.
var ErrCiphertextTooShort = errors.New("primitive: ciphertext shorter than IV+TAG")

// EncryptGCM seals plaintext with AES-256-GCM under key, using a fresh
// random 96-bit nonce, and returns the envelope IV(12) ‖ TAG(16) ‖ CT(n).
// aad may be nil; the current callers never supply one.
func EncryptGCM(key, plaintext, aad []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("primitive: AES-256-GCM key must be %d bytes, got %d", KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("primitive: new AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCMWithTagSize(block, TagSize)
	if err != nil {
		return nil, fmt.Errorf("primitive: new GCM: %w", err)
	}

	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("primitive: nonce generation: %w", err)
	}

	// Go's Seal produces ciphertext||tag; reorder explicitly into the
	// IV‖TAG‖CT envelope layout instead of the appended IV‖CT‖TAG form.
	sealed := gcm.Seal(nil, nonce, plaintext, aad)
	ctLen := len(sealed) - TagSize
	out := make([]byte, 0, NonceSize+TagSize+ctLen)
	out = append(out, nonce...)
	out = append(out, sealed[ctLen:]...) // tag
	out = append(out, sealed[:ctLen]...) // ciphertext
	return out, nil
}

// DecryptGCM opens an envelope produced by EncryptGCM. It fails closed: any
// tag mismatch, truncation, or tampering with IV/TAG/CT/AAD returns an
// error and never returns partial plaintext.
func DecryptGCM(key, envelope, aad []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("primitive: AES-256-GCM key must be %d bytes, got %d", KeySize, len(key))
	}
	if len(envelope) < NonceSize+TagSize {
		return nil, ErrCiphertextTooShort
	}

	nonce := envelope[:NonceSize]
	tag := envelope[NonceSize : NonceSize+TagSize]
	ct := envelope[NonceSize+TagSize:]

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("primitive: new AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCMWithTagSize(block, TagSize)
	if err != nil {
		return nil, fmt.Errorf("primitive: new GCM: %w", err)
	}

	// Go's GCM.Open expects ciphertext||tag; reassemble from our IV‖TAG‖CT
	// envelope layout.
	ctWithTag := make([]byte, 0, len(ct)+TagSize)
	ctWithTag = append(ctWithTag, ct...)
	ctWithTag = append(ctWithTag, tag...)

	plaintext, err := gcm.Open(nil, nonce, ctWithTag, aad)
	if err != nil {
		return nil, fmt.Errorf("primitive: GCM tag verification failed: %w", err)
	}
	return plaintext, nil
}
