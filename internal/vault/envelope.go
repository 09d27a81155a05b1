package vault

import (
	"github.com/erickherrera/CriptoGualet-sub001/internal/coreerr"
	"github.com/erickherrera/CriptoGualet-sub001/internal/primitive"
)

// EncryptBlob and DecryptBlob are the envelope-encryption helpers for
// at-rest columns carrying keys/seeds, independent of any page-level
// encryption: both call internal/primitive's AES-GCM.
func EncryptBlob(key, plaintext []byte) ([]byte, error) {
	envelope, err := primitive.EncryptGCM(key, plaintext, nil)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.CryptoFailure, "envelope encryption failed", err)
	}
	return envelope, nil
}

func DecryptBlob(key, blob []byte) ([]byte, error) {
	plaintext, err := primitive.DecryptGCM(key, blob, nil)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.CryptoFailure, "envelope decryption failed", err)
	}
	return plaintext, nil
}
