package encoding

import (
	"bytes"
	"encoding/hex"
	"math/big"
	"testing"
)

func TestRLPEncodeOneEtherInWei(t *testing.T) {
	oneEth, ok := new(big.Int).SetString("1000000000000000000", 10)
	if !ok {
		t.Fatal("failed to parse 1 ETH in wei")
	}

	got, err := RLPEncodeBytes(BigEndianMinimal(oneEth))
	if err != nil {
		t.Fatalf("RLPEncodeBytes: %v", err)
	}

	want, err := hex.DecodeString("880de0b6b3a7640000")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("RLP(1 ETH in wei) = %x, want %x", got, want)
	}
}

func TestRLPEncodeZeroIsEmptyString(t *testing.T) {
	got, err := RLPEncodeBytes(BigEndianMinimal(big.NewInt(0)))
	if err != nil {
		t.Fatalf("RLPEncodeBytes: %v", err)
	}
	want := []byte{0x80}
	if !bytes.Equal(got, want) {
		t.Errorf("RLP(0) = %x, want %x", got, want)
	}
}
