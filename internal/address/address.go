// Package address implements the chain-aware address codec:
// Bitcoin-family P2PKH Base58Check and EIP-55 checksummed EVM hex, plus
// format validation and best-effort chain detection.
package address

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/erickherrera/CriptoGualet-sub001/internal/chain"
	"github.com/erickherrera/CriptoGualet-sub001/internal/coreerr"
	"github.com/erickherrera/CriptoGualet-sub001/internal/encoding"
	"github.com/erickherrera/CriptoGualet-sub001/internal/primitive"
)

// FromCompressedPubkey derives a Bitcoin-family P2PKH address:
// Base58Check(versionByte ‖ Hash160(compressedPubkey33)).
func FromCompressedPubkey(params chain.Params, compressedPubkey []byte) (string, error) {
	if params.Family != chain.FamilyBitcoin {
		return "", coreerr.New(coreerr.InvalidInput, fmt.Sprintf("%s is not a Bitcoin-family chain", params.Name))
	}
	if len(compressedPubkey) != 33 {
		return "", coreerr.New(coreerr.InvalidInput, "compressed pubkey must be 33 bytes")
	}
	pkh := primitive.Hash160(compressedPubkey)
	return encoding.Base58CheckEncode(params.P2PKHVersion, pkh[:]), nil
}

// FromUncompressedPubkey derives an EIP-55 checksummed EVM address from a
// 65-byte uncompressed secp256k1 pubkey (0x04 ‖ X ‖ Y): Keccak256 the 64
// bytes after the 0x04 prefix, take the last 20 bytes, hex-encode, then
// apply the EIP-55 mixed-case checksum.
func FromUncompressedPubkey(uncompressedPubkey []byte) (string, error) {
	if len(uncompressedPubkey) != 65 || uncompressedPubkey[0] != 0x04 {
		return "", coreerr.New(coreerr.InvalidInput, "uncompressed pubkey must be 65 bytes starting with 0x04")
	}
	h := primitive.Keccak256(uncompressedPubkey[1:])
	last20 := h[12:]
	return checksumEncode(last20), nil
}

// checksumEncode applies EIP-55 to the raw 20-byte address.
func checksumEncode(addr []byte) string {
	lower := hex.EncodeToString(addr)
	hash := primitive.Keccak256([]byte(lower))

	var b strings.Builder
	b.WriteString("0x")
	for i, c := range lower {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
			continue
		}
		// hash byte i/2, nibble selected by whether i is even (high) or odd (low)
		hashByte := hash[i/2]
		var nibble byte
		if i%2 == 0 {
			nibble = hashByte >> 4
		} else {
			nibble = hashByte & 0x0f
		}
		if nibble >= 8 {
			b.WriteRune(c - 'a' + 'A')
		} else {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// ValidateEVM checks the 42-char 0x-hex shape and, for mixed-case input,
// the EIP-55 checksum.
func ValidateEVM(addr string) error {
	if len(addr) != 42 || !strings.HasPrefix(addr, "0x") {
		return coreerr.New(coreerr.InvalidInput, "EVM address must be 0x + 40 hex chars")
	}
	body := addr[2:]
	if _, err := hex.DecodeString(body); err != nil {
		return coreerr.Wrap(coreerr.InvalidInput, "EVM address is not valid hex", err)
	}

	isAllLower := body == strings.ToLower(body)
	isAllUpper := body == strings.ToUpper(body)
	if isAllLower || isAllUpper {
		return nil
	}

	raw, err := hex.DecodeString(strings.ToLower(body))
	if err != nil {
		return coreerr.Wrap(coreerr.InvalidInput, "EVM address is not valid hex", err)
	}
	want := checksumEncode(raw)
	if want != addr {
		return coreerr.New(coreerr.InvalidInput, "EVM address fails EIP-55 checksum")
	}
	return nil
}

// ValidateBitcoinFamily checks the 26-35 char Base58 length/alphabet and
// decodes the checksum.
func ValidateBitcoinFamily(addr string) error {
	if len(addr) < 26 || len(addr) > 35 {
		return coreerr.New(coreerr.InvalidInput, "Bitcoin-family address must be 26-35 chars")
	}
	if strings.ContainsAny(addr, "0OIl") {
		return coreerr.New(coreerr.InvalidInput, "Bitcoin-family address contains a disallowed character")
	}
	if _, _, err := encoding.Base58CheckDecode(addr); err != nil {
		return coreerr.Wrap(coreerr.InvalidInput, "Bitcoin-family address failed checksum decode", err)
	}
	return nil
}

// Detect makes a best-effort guess at which chain addr belongs to, from
// its format alone. Returns chain.Ethereum for
// a valid EIP-55 hex address (EVM variants are indistinguishable by
// format), or a Bitcoin-family ID inferred from the first character, or
// ok=false if the address is ambiguous/unrecognizable.
func Detect(addr string) (id chain.ID, ok bool) {
	if err := ValidateEVM(addr); err == nil {
		return chain.Ethereum, true
	}
	if err := ValidateBitcoinFamily(addr); err != nil {
		return 0, false
	}
	// BitcoinTestnet and LitecoinTestnet share a prefix space; the lowest
	// chain ID claiming the first character wins, so testnet detection
	// resolves to BitcoinTestnet.
	for id := chain.BitcoinMainnet; id <= chain.LitecoinTestnet; id++ {
		p := chain.Table[id]
		if strings.ContainsRune(p.AddressPrefixes, rune(addr[0])) {
			return id, true
		}
	}
	return 0, false
}
