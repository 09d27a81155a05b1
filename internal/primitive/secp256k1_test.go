package primitive

import (
	"bytes"
	"testing"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	ctx := NewSecp256k1Context()
	priv, err := RandomBytes(32)
	if err != nil {
		t.Fatal(err)
	}
	pub, _, err := ctx.PubkeyFromSecret(priv)
	if err != nil {
		t.Fatal(err)
	}

	msg := SHA256([]byte("message to sign"))
	der, r, s, err := ctx.Sign(priv, msg[:])
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if len(r) != 32 || len(s) != 32 {
		t.Errorf("r/s lengths = %d/%d, want 32/32", len(r), len(s))
	}
	if !ctx.Verify(pub, msg[:], der) {
		t.Errorf("signature did not verify under its own public key")
	}

	other := SHA256([]byte("a different message"))
	if ctx.Verify(pub, other[:], der) {
		t.Errorf("signature verified under the wrong message")
	}
}

func TestSignRecoverableRecIDMatchesKey(t *testing.T) {
	ctx := NewSecp256k1Context()
	priv, err := RandomBytes(32)
	if err != nil {
		t.Fatal(err)
	}
	msg := SHA256([]byte("recoverable"))
	_, _, recID, err := ctx.SignRecoverable(priv, msg[:])
	if err != nil {
		t.Fatalf("SignRecoverable: %v", err)
	}
	if recID > 3 {
		t.Errorf("recID = %d, want 0-3", recID)
	}
}

func TestTweakAddPrivAndPubCommute(t *testing.T) {
	ctx := NewSecp256k1Context()
	priv, err := RandomBytes(32)
	if err != nil {
		t.Fatal(err)
	}
	pub, _, err := ctx.PubkeyFromSecret(priv)
	if err != nil {
		t.Fatal(err)
	}

	tweak := make([]byte, 32)
	tweak[31] = 7

	tweakedPriv, ok := ctx.TweakAddPriv(priv, tweak)
	if !ok {
		t.Fatal("TweakAddPriv reported skip for a small tweak")
	}
	pubOfTweakedPriv, _, err := ctx.PubkeyFromSecret(tweakedPriv)
	if err != nil {
		t.Fatal(err)
	}

	tweakedPub, ok := ctx.TweakAddPub(pub, tweak)
	if !ok {
		t.Fatal("TweakAddPub reported skip for a small tweak")
	}
	if !bytes.Equal(pubOfTweakedPriv, tweakedPub) {
		t.Errorf("pub(priv+t) = %x, (pub+t*G) = %x", pubOfTweakedPriv, tweakedPub)
	}
}

func TestTweakAddPrivRejectsOverflowTweak(t *testing.T) {
	ctx := NewSecp256k1Context()
	priv := make([]byte, 32)
	priv[31] = 1

	overflow := bytes.Repeat([]byte{0xff}, 32) // > n
	if _, ok := ctx.TweakAddPriv(priv, overflow); ok {
		t.Errorf("expected an over-order tweak to be rejected")
	}
}

func TestValidPubKey(t *testing.T) {
	ctx := NewSecp256k1Context()
	priv, err := RandomBytes(32)
	if err != nil {
		t.Fatal(err)
	}
	compressed, uncompressed, err := ctx.PubkeyFromSecret(priv)
	if err != nil {
		t.Fatal(err)
	}
	if !ctx.ValidPubKey(compressed) || !ctx.ValidPubKey(uncompressed) {
		t.Errorf("expected both encodings of a real key to validate")
	}
	if ctx.ValidPubKey(make([]byte, 33)) {
		t.Errorf("expected an all-zero compressed encoding to be rejected")
	}
}
