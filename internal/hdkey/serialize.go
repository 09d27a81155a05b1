package hdkey

import (
	"fmt"

	"github.com/erickherrera/CriptoGualet-sub001/internal/coreerr"
	"github.com/erickherrera/CriptoGualet-sub001/internal/encoding"
	"github.com/erickherrera/CriptoGualet-sub001/internal/primitive"
)

// Extended-key version bytes (BIP-32).
var (
	VersionMainnetPriv = [4]byte{0x04, 0x88, 0xad, 0xe4} // xprv
	VersionMainnetPub  = [4]byte{0x04, 0x88, 0xb2, 0x1e} // xpub
	VersionTestnetPriv = [4]byte{0x04, 0x35, 0x83, 0x94} // tprv
	VersionTestnetPub  = [4]byte{0x04, 0x35, 0x87, 0xcf} // tpub
)

// Serialize encodes k as the standard 78-byte extended-key payload:
// version(4) ‖ depth(1) ‖ parentFP(4) ‖ childNumber(4) ‖ chainCode(32) ‖ key(33),
// Base58Check-encoded. key is 0x00‖priv for private keys or the 33-byte
// compressed pubkey for public keys.
func (k *ExtendedKey) Serialize(version [4]byte) (string, error) {
	pub, err := k.CompressedPubKey()
	if err != nil {
		return "", err
	}

	payload := make([]byte, 0, 77)
	payload = append(payload, version[:]...)
	payload = append(payload, k.Depth)
	payload = append(payload, ser32(k.ParentFingerprint)...)
	payload = append(payload, ser32(k.ChildNumber)...)
	payload = append(payload, k.ChainCode...)
	if k.IsPrivate {
		payload = append(payload, 0x00)
		payload = append(payload, k.Key...)
	} else {
		payload = append(payload, pub...)
	}

	// BIP-32's 4-byte version prefix is already inside the 78-byte payload,
	// so the checksum is appended by appendChecksum and the result is plain
	// Base58-encoded, with no extra Base58Check version byte.
	return encoding.Base58Encode(appendChecksum(payload)), nil
}

func appendChecksum(payload []byte) []byte {
	sum := doubleSHA256(payload)
	out := append([]byte(nil), payload...)
	return append(out, sum[:4]...)
}

// ImportExtendedKey decodes a Base58Check extended-key string, validating
// its length and version discriminator against the known mainnet/testnet
// xprv/xpub/tprv/tpub values. Any length mismatch or bad
// checksum fails with InvalidExtendedKey.
func ImportExtendedKey(s string) (*ExtendedKey, error) {
	raw := encoding.Base58Decode(s)
	if len(raw) != 82 { // 78-byte payload + 4-byte checksum
		return nil, coreerr.New(coreerr.InvalidExtendedKey, fmt.Sprintf("decoded length %d, want 82", len(raw)))
	}
	payload, checksum := raw[:78], raw[78:]
	sum := doubleSHA256(payload)
	for i := 0; i < 4; i++ {
		if checksum[i] != sum[i] {
			return nil, coreerr.New(coreerr.InvalidExtendedKey, "checksum mismatch")
		}
	}

	var version [4]byte
	copy(version[:], payload[:4])
	isPrivate, err := versionIsPrivate(version)
	if err != nil {
		return nil, err
	}

	depth := payload[4]
	parentFP := uint32(payload[5])<<24 | uint32(payload[6])<<16 | uint32(payload[7])<<8 | uint32(payload[8])
	childNumber := uint32(payload[9])<<24 | uint32(payload[10])<<16 | uint32(payload[11])<<8 | uint32(payload[12])
	chainCode := append([]byte(nil), payload[13:45]...)
	keyField := payload[45:78]

	var key []byte
	if isPrivate {
		if keyField[0] != 0x00 {
			return nil, coreerr.New(coreerr.InvalidExtendedKey, "private key field must start with 0x00")
		}
		key = append([]byte(nil), keyField[1:]...)
		if !validPrivateScalar(key) {
			return nil, coreerr.New(coreerr.InvalidExtendedKey, "private key is not in [1, n-1]")
		}
	} else {
		key = append([]byte(nil), keyField...)
		if !secpCtx.ValidPubKey(key) {
			return nil, coreerr.New(coreerr.InvalidExtendedKey, "public key is not a valid curve point")
		}
	}

	return &ExtendedKey{
		Key:               key,
		ChainCode:         chainCode,
		Depth:             depth,
		ParentFingerprint: parentFP,
		ChildNumber:       childNumber,
		IsPrivate:         isPrivate,
	}, nil
}

func versionIsPrivate(v [4]byte) (bool, error) {
	switch v {
	case VersionMainnetPriv, VersionTestnetPriv:
		return true, nil
	case VersionMainnetPub, VersionTestnetPub:
		return false, nil
	default:
		return false, coreerr.New(coreerr.InvalidExtendedKey, fmt.Sprintf("unrecognized version bytes %x", v))
	}
}

func doubleSHA256(data []byte) [32]byte {
	return primitive.DoubleSHA256(data)
}
