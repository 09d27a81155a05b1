package encoding

import (
	"bytes"
	"testing"
)

func TestVarIntEncodeDiscriminators(t *testing.T) {
	tests := []struct {
		val  uint64
		want []byte
	}{
		{0, []byte{0x00}},
		{0xfc, []byte{0xfc}},
		{0xfd, []byte{0xfd, 0xfd, 0x00}},
		{0xffff, []byte{0xfd, 0xff, 0xff}},
		{0x10000, []byte{0xfe, 0x00, 0x00, 0x01, 0x00}},
		{0x100000000, []byte{0xff, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00}},
	}
	for _, tt := range tests {
		if got := VarIntEncode(tt.val); !bytes.Equal(got, tt.want) {
			t.Errorf("VarIntEncode(%#x) = %x, want %x", tt.val, got, tt.want)
		}
	}
}

func TestVarIntRoundTrip(t *testing.T) {
	for _, val := range []uint64{0, 1, 252, 253, 65535, 65536, 1 << 32} {
		enc := VarIntEncode(val)
		got, consumed, err := VarIntDecode(enc)
		if err != nil {
			t.Fatalf("VarIntDecode(%x): %v", enc, err)
		}
		if got != val || consumed != len(enc) {
			t.Errorf("round trip of %d gave (%d, %d)", val, got, consumed)
		}
	}
}

func TestHexDecodeAcceptsOptionalPrefix(t *testing.T) {
	for _, in := range []string{"0xdeadbeef", "deadbeef", "0XDEADBEEF"} {
		b, err := HexDecode(in)
		if err != nil {
			t.Fatalf("HexDecode(%q): %v", in, err)
		}
		if !bytes.Equal(b, []byte{0xde, 0xad, 0xbe, 0xef}) {
			t.Errorf("HexDecode(%q) = %x", in, b)
		}
	}
	if _, err := HexDecode("0xzz"); err == nil {
		t.Errorf("expected invalid hex to fail")
	}
}

func TestBigEndianMinimal(t *testing.T) {
	if got := BigEndianMinimalUint64(0); len(got) != 0 {
		t.Errorf("zero must encode to the empty string, got %x", got)
	}
	if got := BigEndianMinimalUint64(0x0102); !bytes.Equal(got, []byte{0x01, 0x02}) {
		t.Errorf("BigEndianMinimalUint64(0x0102) = %x", got)
	}
}
