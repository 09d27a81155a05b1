// Package encoding implements the wire/display encoding layer: hex, Base58
// and Base58Check, big-endian minimal integers, Bitcoin VarInt, and RLP.
// Base32 is not here; it lives in primitive (Base32Encode/Base32Decode).
package encoding

import (
	"encoding/hex"
	"strings"
)

// HexDecode decodes s into bytes, accepting an optional "0x"/"0X" prefix.
func HexDecode(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return hex.DecodeString(s)
}

// HexEncode encodes data as lowercase hex with a "0x" prefix.
func HexEncode(data []byte) string {
	return "0x" + hex.EncodeToString(data)
}
