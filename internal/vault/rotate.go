package vault

import (
	"context"
	"crypto/sha256"

	"github.com/erickherrera/CriptoGualet-sub001/internal/coreerr"
	"github.com/erickherrera/CriptoGualet-sub001/internal/primitive"
)

// RotateKey replaces the vault key without re-encrypting any data. As
// documented on Open, this Store has no
// page-level cipher to rekey — plain mattn/go-sqlite3 carries no native
// encryption, and per-user secrets are protected by a password-derived
// envelope key (key_salt + PBKDF2), not this vault-wide key. RotateKey
// therefore proves possession of the current key (constant-time against
// the hash recorded at Open), swaps in newKey's hash, and records the
// rotation in the audit log. The key hash is held in memory only: it is
// not persisted, and a later Open accepts any key of at least 32 bytes; a backing store with real page encryption (e.g.
// SQLCipher's `PRAGMA rekey`) would do the equivalent re-encryption pass
// here instead.
func (s *Store) RotateKey(ctx context.Context, oldKey, newKey []byte) error {
	oldHash := sha256.Sum256(oldKey)
	if !primitive.ConstantTimeCompare(oldHash[:], s.keyHash[:]) {
		return coreerr.New(coreerr.InvalidCredentials, "current vault key does not match")
	}
	if len(newKey) < 32 {
		return coreerr.New(coreerr.InvalidInput, "new vault key must be at least 32 bytes")
	}

	s.lock.Lock()
	s.keyHash = sha256.Sum256(newKey)
	s.lock.Unlock()

	s.Audit("vault.rotate_key", "vault key rotated")
	return nil
}
