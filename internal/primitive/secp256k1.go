package primitive

import (
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// Secp256k1Context is the process-wide, read-mostly curve context.
// It carries no mutable state of its own — secp256k1
// group operations need no locking — but gives the rest of the core a
// single value to initialize once at startup and reference thereafter,
// rather than constructing curve parameters ad hoc at every call site.
type Secp256k1Context struct{}

var (
	ctxOnce sync.Once
	ctx     *Secp256k1Context
)

// NewSecp256k1Context returns the process-wide secp256k1 context,
// initializing it on first call.
func NewSecp256k1Context() *Secp256k1Context {
	ctxOnce.Do(func() { ctx = &Secp256k1Context{} })
	return ctx
}

// PubkeyFromSecret derives the compressed (33B) and uncompressed (65B)
// public key encodings for a 32-byte secret scalar.
func (*Secp256k1Context) PubkeyFromSecret(priv []byte) (compressed, uncompressed []byte, err error) {
	if len(priv) != 32 {
		return nil, nil, fmt.Errorf("primitive: private key must be 32 bytes, got %d", len(priv))
	}
	pk, pub := btcec.PrivKeyFromBytes(priv)
	defer pk.Zero()
	return pub.SerializeCompressed(), pub.SerializeUncompressed(), nil
}

// Sign computes a low-S-normalized ECDSA signature (r, s) over a 32-byte
// message digest, DER-encoded. btcec's ecdsa.SignCompact, used below, already
// enforces the low-S rule internally (BIP-62 / Bitcoin Core malleability fix).
func (*Secp256k1Context) Sign(priv, msg32 []byte) (der []byte, r, s []byte, err error) {
	if len(msg32) != 32 {
		return nil, nil, nil, fmt.Errorf("primitive: message digest must be 32 bytes, got %d", len(msg32))
	}
	pk, _ := btcec.PrivKeyFromBytes(priv)
	defer pk.Zero()

	// SignCompact yields [recoveryByte, r(32), s(32)] directly, giving us
	// r/s without reaching into the Signature's unexported scalars.
	compact, err := ecdsa.SignCompact(pk, msg32, false)
	if err != nil {
		return nil, nil, nil, err
	}
	r = append([]byte(nil), compact[1:33]...)
	s = append([]byte(nil), compact[33:65]...)

	var rScalar, sScalar secp256k1.ModNScalar
	rScalar.SetByteSlice(r)
	sScalar.SetByteSlice(s)
	sig := ecdsa.NewSignature(&rScalar, &sScalar)
	return sig.Serialize(), r, s, nil
}

// Verify reports whether sig (DER-encoded) is a valid signature over msg32
// under the given (33B compressed or 65B uncompressed) public key.
func (*Secp256k1Context) Verify(pub, msg32, der []byte) bool {
	pk, err := btcec.ParsePubKey(pub)
	if err != nil {
		return false
	}
	sig, err := ecdsa.ParseDERSignature(der)
	if err != nil {
		return false
	}
	return sig.Verify(msg32, pk)
}

// SignRecoverable computes an ECDSA signature together with the recovery
// id needed to reconstruct the signer's public key from (msg32, r, s,
// recID) alone. Delegated to go-ethereum's crypto.Sign, which returns a
// 65-byte [R(32) S(32) V(1)] signature with V==recID directly; callers
// must use this recID rather than assuming 0.
func (*Secp256k1Context) SignRecoverable(priv, msg32 []byte) (r, s []byte, recID byte, err error) {
	if len(msg32) != 32 {
		return nil, nil, 0, fmt.Errorf("primitive: message digest must be 32 bytes, got %d", len(msg32))
	}
	ecdsaPriv, err := ethcrypto.ToECDSA(priv)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("primitive: invalid secp256k1 scalar: %w", err)
	}
	sig, err := ethcrypto.Sign(msg32, ecdsaPriv)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("primitive: recoverable sign: %w", err)
	}
	return sig[:32], sig[32:64], sig[64], nil
}

// ValidPubKey reports whether pub parses as a valid point on the curve
// (33B compressed or 65B uncompressed encoding).
func (*Secp256k1Context) ValidPubKey(pub []byte) bool {
	_, err := secp256k1.ParsePubKey(pub)
	return err == nil
}

// TweakAddPriv computes (priv + tweak) mod n, the private-key half of
// BIP-32 CKDpriv. Returns "skip this index" semantics
// by returning ok=false (never an error) when the tweaked scalar is zero
// or the tweak itself overflows the group order — the caller re-derives at
// the next child index per BIP-32.
func (*Secp256k1Context) TweakAddPriv(priv, tweak32 []byte) (result []byte, ok bool) {
	var k, t secp256k1.ModNScalar
	if overflow := k.SetByteSlice(priv); overflow {
		return nil, false
	}
	if overflow := t.SetByteSlice(tweak32); overflow {
		return nil, false
	}
	k.Add(&t)
	if k.IsZero() {
		return nil, false
	}
	out := k.Bytes()
	return out[:], true
}

// TweakAddPub computes K + tweak*G, the public-key half of CKDpub.
func (*Secp256k1Context) TweakAddPub(pub, tweak32 []byte) (result []byte, ok bool) {
	parentPub, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return nil, false
	}

	var t secp256k1.ModNScalar
	if overflow := t.SetByteSlice(tweak32); overflow {
		return nil, false
	}

	var tweakPoint, parentPoint, sum secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&t, &tweakPoint)
	parentPub.AsJacobian(&parentPoint)
	secp256k1.AddNonConst(&tweakPoint, &parentPoint, &sum)
	if sum.X.IsZero() && sum.Y.IsZero() {
		return nil, false
	}
	sum.ToAffine()
	childPub := secp256k1.NewPublicKey(&sum.X, &sum.Y)
	return childPub.SerializeCompressed(), true
}
