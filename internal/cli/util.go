package cli

import (
	"fmt"
	"strconv"

	"github.com/erickherrera/CriptoGualet-sub001/internal/encoding"
)

// decodeHexKey decodes a hex-encoded vault key, accepting an optional "0x"
// prefix, and requires at least 32 bytes (vault.Open's own floor).
func decodeHexKey(s string) ([]byte, error) {
	b, err := encoding.HexDecode(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex vault key: %w", err)
	}
	if len(b) < 32 {
		return nil, fmt.Errorf("vault key must decode to at least 32 bytes, got %d", len(b))
	}
	return b, nil
}

// parseCoords parses the account/change/index BIP-44 path components shared
// by derive-address and the tx subcommands.
func parseCoords(accountStr, changeStr, indexStr string) (account, change, index uint32, err error) {
	a, err := strconv.ParseUint(accountStr, 10, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid account: %w", err)
	}
	c, err := strconv.ParseUint(changeStr, 10, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid change: %w", err)
	}
	i, err := strconv.ParseUint(indexStr, 10, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid index: %w", err)
	}
	return uint32(a), uint32(c), uint32(i), nil
}
