package encoding

import (
	"fmt"

	"github.com/btcsuite/btcutil/base58"
)

// Base58Encode and Base58Decode wrap btcutil/base58's plain (non-checked)
// codec over the Bitcoin alphabet
// "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz".
func Base58Encode(data []byte) string {
	return base58.Encode(data)
}

func Base58Decode(s string) []byte {
	return base58.Decode(s)
}

// Base58CheckEncode encodes payload with a leading versionByte and a
// trailing 4-byte double-SHA-256 checksum:
// versionByte ‖ payload ‖ SHA256(SHA256(versionByte‖payload))[0..4].
func Base58CheckEncode(versionByte byte, payload []byte) string {
	return base58.CheckEncode(payload, versionByte)
}

// Base58CheckDecode verifies and strips the version byte and checksum,
// returning the payload and the version byte separately.
func Base58CheckDecode(s string) (payload []byte, version byte, err error) {
	payload, version, err = base58.CheckDecode(s)
	if err != nil {
		return nil, 0, fmt.Errorf("encoding: base58check decode: %w", err)
	}
	return payload, version, nil
}
