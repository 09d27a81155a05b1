package evmtx

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/erickherrera/CriptoGualet-sub001/internal/primitive"
)

// TestSignedTxRecoversToSigner checks that v is computed from the real
// recovery id, not hardcoded assuming rec_id=0. We verify the produced
// signature under the signer's own pubkey, then recover the public key
// from (sighash, r, s, v-37): that recovery yields the signer only if v
// carries the real recovery id.
func TestSignedTxRecoversToSigner(t *testing.T) {
	priv, err := primitive.RandomBytes(32)
	if err != nil {
		t.Fatal(err)
	}
	ctx := primitive.NewSecp256k1Context()
	compressedPub, _, err := ctx.PubkeyFromSecret(priv)
	if err != nil {
		t.Fatal(err)
	}

	tx := Tx{
		Nonce:    0,
		GasPrice: big.NewInt(20_000_000_000),
		GasLimit: 21000,
		To:       make([]byte, 20),
		Value:    big.NewInt(1_000_000_000_000_000_000),
	}
	signed, err := Sign(tx, 1, priv)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	sighash, err := Sighash(tx, 1)
	if err != nil {
		t.Fatal(err)
	}

	rBytes := leftPad32(signed.R.Bytes())
	sBytes := leftPad32(signed.S.Bytes())
	der, err := derFromRS(rBytes, sBytes)
	if err != nil {
		t.Fatal(err)
	}
	if !ctx.Verify(compressedPub, sighash[:], der) {
		t.Errorf("signature does not verify under the signer's own pubkey")
	}

	// v must be chainId*2+35+recID for chainId=1, i.e. 37 or 38.
	v := signed.V.Int64()
	if v != 37 && v != 38 {
		t.Errorf("v = %d, want 37 or 38 for chainId=1", v)
	}

	sig65 := append(append(append([]byte(nil), rBytes...), sBytes...), byte(v-37))
	recovered, err := ethcrypto.SigToPub(sighash[:], sig65)
	if err != nil {
		t.Fatalf("SigToPub: %v", err)
	}
	if !bytes.Equal(ethcrypto.CompressPubkey(recovered), compressedPub) {
		t.Errorf("v = %d does not recover the signer's pubkey", v)
	}
}

func TestSerializeZeroValueEncodesEmptyString(t *testing.T) {
	tx := Tx{Nonce: 0, GasPrice: big.NewInt(0), GasLimit: 21000, To: make([]byte, 20), Value: big.NewInt(0)}
	signed := SignedTx{Tx: tx, V: big.NewInt(37), R: big.NewInt(1), S: big.NewInt(1)}
	out, err := signed.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	if len(out) < 2 || out[:2] != "0x" {
		t.Errorf("expected 0x-prefixed serialization, got %s", out)
	}
	// nonce, gasPrice and value are 0 and data is empty, so each encodes as
	// the RLP empty string 0x80.
	want := "0xdf808082520894" + strings.Repeat("00", 20) + "8080250101"
	if out != want {
		t.Errorf("Serialize() = %s, want %s", out, want)
	}
}

func TestSighashOneEtherIsDeterministic(t *testing.T) {
	tx := Tx{Nonce: 0, GasPrice: big.NewInt(1), GasLimit: 21000, To: make([]byte, 20), Value: big.NewInt(1_000_000_000_000_000_000)}
	h1, err := Sighash(tx, 1)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := Sighash(tx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Errorf("Sighash is not deterministic for identical input")
	}
}

func leftPad32(b []byte) []byte {
	if len(b) >= 32 {
		return b[len(b)-32:]
	}
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}

// derFromRS re-encodes raw (r,s) into DER for primitive.Verify, mirroring
// what internal/primitive.Sign produces internally.
func derFromRS(r, s []byte) ([]byte, error) {
	encodeInt := func(b []byte) []byte {
		// strip leading zero bytes, then re-add one if the high bit is set
		i := 0
		for i < len(b)-1 && b[i] == 0 {
			i++
		}
		b = b[i:]
		if b[0]&0x80 != 0 {
			b = append([]byte{0x00}, b...)
		}
		return b
	}
	rEnc := encodeInt(r)
	sEnc := encodeInt(s)
	body := append([]byte{0x02, byte(len(rEnc))}, rEnc...)
	body = append(body, 0x02, byte(len(sEnc)))
	body = append(body, sEnc...)
	der := append([]byte{0x30, byte(len(body))}, body...)
	return der, nil
}
