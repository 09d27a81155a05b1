// Package hdkey implements the BIP-32/BIP-44 HD key tree:
// master key generation from seed, hardened and non-hardened child
// derivation, the derivation path parser, fingerprints, and extended-key
// (xprv/xpub/tprv/tpub) import.
package hdkey

import (
	"math/big"

	"github.com/erickherrera/CriptoGualet-sub001/internal/coreerr"
	"github.com/erickherrera/CriptoGualet-sub001/internal/primitive"
)

// HardenedOffset is 2^31, the index at and above which a child is hardened.
const HardenedOffset = uint32(0x80000000)

// ExtendedKey is a BIP-32 extended key, carrying either a private scalar
// or a compressed public point together with its chain code and position
// in the tree.
type ExtendedKey struct {
	Key               []byte // 32B private scalar, or 33B compressed public key
	ChainCode         []byte // 32B
	Depth             uint8
	ParentFingerprint uint32
	ChildNumber       uint32
	IsPrivate         bool
}

var secpCtx = primitive.NewSecp256k1Context()

// secp256k1 group order n, used to validate private scalars lie in [1, n-1].
var curveOrder, _ = new(big.Int).SetString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)

// NewMaster derives the master extended private key from a 64-byte BIP-39
// seed: I = HMAC-SHA512(key="Bitcoin seed", data=seed); priv=I[:32],
// chainCode=I[32:]; depth/fingerprint/childNumber are all zero.
func NewMaster(seed []byte) (*ExtendedKey, error) {
	if len(seed) == 0 {
		return nil, coreerr.New(coreerr.InvalidInput, "seed must not be empty")
	}
	i := primitive.HMACSHA512([]byte("Bitcoin seed"), seed)
	defer primitive.SecureZero(i)

	priv := append([]byte(nil), i[:32]...)
	chainCode := append([]byte(nil), i[32:]...)

	if !validPrivateScalar(priv) {
		return nil, coreerr.New(coreerr.CryptoFailure, "master key derivation produced an invalid scalar")
	}

	return &ExtendedKey{
		Key:               priv,
		ChainCode:         chainCode,
		Depth:             0,
		ParentFingerprint: 0,
		ChildNumber:       0,
		IsPrivate:         true,
	}, nil
}

func validPrivateScalar(priv []byte) bool {
	n := new(big.Int).SetBytes(priv)
	return n.Sign() > 0 && n.Cmp(curveOrder) < 0
}

// CompressedPubKey returns the 33-byte compressed public key, computing it
// from the private scalar if this key is private.
func (k *ExtendedKey) CompressedPubKey() ([]byte, error) {
	if !k.IsPrivate {
		return k.Key, nil
	}
	compressed, _, err := secpCtx.PubkeyFromSecret(k.Key)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.CryptoFailure, "pubkey derivation failed", err)
	}
	return compressed, nil
}

// UncompressedPubKey returns the 65-byte uncompressed public key (0x04 ‖ X
// ‖ Y). Only defined for a private key — a public-only ExtendedKey carries
// just the compressed point and this package does not implement point
// decompression, since every caller that needs the uncompressed form
// (EVM address derivation) holds the private master key anyway.
func (k *ExtendedKey) UncompressedPubKey() ([]byte, error) {
	if !k.IsPrivate {
		return nil, coreerr.New(coreerr.InvalidDerivation, "uncompressed pubkey requires a private extended key")
	}
	_, uncompressed, err := secpCtx.PubkeyFromSecret(k.Key)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.CryptoFailure, "pubkey derivation failed", err)
	}
	return uncompressed, nil
}

// Fingerprint returns the first 4 bytes of Hash160(compressed pubkey), the
// value used as a child's ParentFingerprint.
func (k *ExtendedKey) Fingerprint() ([4]byte, error) {
	pub, err := k.CompressedPubKey()
	if err != nil {
		return [4]byte{}, err
	}
	h := primitive.Hash160(pub)
	var fp [4]byte
	copy(fp[:], h[:4])
	return fp, nil
}

// fingerprintUint32 packs Fingerprint as a big-endian uint32, the form
// ParentFingerprint is stored in.
func fingerprintUint32(fp [4]byte) uint32 {
	return uint32(fp[0])<<24 | uint32(fp[1])<<16 | uint32(fp[2])<<8 | uint32(fp[3])
}

// Child derives child index i from k per BIP-32's CKDpriv/CKDpub rules.
// A hardened index (i >= HardenedOffset) requested from a public
// parent fails with InvalidDerivation. An IL that overflows the curve
// order, or a resulting zero/identity key, returns InvalidDerivation too —
// the caller is expected to retry at i+1 per BIP-32's skip rule.
func (k *ExtendedKey) Child(i uint32) (*ExtendedKey, error) {
	hardened := i >= HardenedOffset

	var data []byte
	if hardened {
		if !k.IsPrivate {
			return nil, coreerr.New(coreerr.InvalidDerivation, "cannot derive a hardened child from a public parent")
		}
		data = make([]byte, 0, 1+32+4)
		data = append(data, 0x00)
		data = append(data, k.Key...)
		data = append(data, ser32(i)...)
	} else {
		pub, err := k.CompressedPubKey()
		if err != nil {
			return nil, err
		}
		data = make([]byte, 0, 33+4)
		data = append(data, pub...)
		data = append(data, ser32(i)...)
	}

	ii := primitive.HMACSHA512(k.ChainCode, data)
	defer primitive.SecureZero(ii)
	il := ii[:32]
	childChainCode := append([]byte(nil), ii[32:]...)

	fp, err := k.Fingerprint()
	if err != nil {
		return nil, err
	}

	if k.IsPrivate {
		childKey, ok := secpCtx.TweakAddPriv(k.Key, il)
		if !ok {
			return nil, coreerr.New(coreerr.InvalidDerivation, "IL out of range or resulting key is zero; retry at next index")
		}
		return &ExtendedKey{
			Key:               childKey,
			ChainCode:         childChainCode,
			Depth:             k.Depth + 1,
			ParentFingerprint: fingerprintUint32(fp),
			ChildNumber:       i,
			IsPrivate:         true,
		}, nil
	}

	childPub, ok := secpCtx.TweakAddPub(k.Key, il)
	if !ok {
		return nil, coreerr.New(coreerr.InvalidDerivation, "IL out of range or resulting point is identity; retry at next index")
	}
	return &ExtendedKey{
		Key:               childPub,
		ChainCode:         childChainCode,
		Depth:             k.Depth + 1,
		ParentFingerprint: fingerprintUint32(fp),
		ChildNumber:       i,
		IsPrivate:         false,
	}, nil
}

// Neuter returns the public-only counterpart of k. Calling Neuter on an
// already-public key returns k unchanged.
func (k *ExtendedKey) Neuter() (*ExtendedKey, error) {
	if !k.IsPrivate {
		return k, nil
	}
	pub, err := k.CompressedPubKey()
	if err != nil {
		return nil, err
	}
	return &ExtendedKey{
		Key:               pub,
		ChainCode:         append([]byte(nil), k.ChainCode...),
		Depth:             k.Depth,
		ParentFingerprint: k.ParentFingerprint,
		ChildNumber:       k.ChildNumber,
		IsPrivate:         false,
	}, nil
}

// DeriveAt walks the full path from k (typically a master key) to the
// extended key at path, returning InvalidDerivation at the first index
// that cannot be derived.
func (k *ExtendedKey) DeriveAt(path []uint32) (*ExtendedKey, error) {
	cur := k
	for _, idx := range path {
		next, err := cur.Child(idx)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

func ser32(i uint32) []byte {
	return []byte{byte(i >> 24), byte(i >> 16), byte(i >> 8), byte(i)}
}
