package encoding

import "testing"

func TestBase58CheckRoundTrip(t *testing.T) {
	payload := []byte{0x62, 0xe9, 0x07, 0xb1, 0x5c, 0xbf, 0x27, 0xd5,
		0x42, 0x53, 0x99, 0xeb, 0xf6, 0xf0, 0xfb, 0x50, 0xeb, 0xb8, 0x8f, 0x18}

	addr := Base58CheckEncode(0x00, payload)
	if addr != "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa" {
		t.Errorf("Base58CheckEncode = %s, want 1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", addr)
	}

	decoded, version, err := Base58CheckDecode(addr)
	if err != nil {
		t.Fatalf("Base58CheckDecode: %v", err)
	}
	if version != 0x00 {
		t.Errorf("version = %x, want 0x00", version)
	}
	if string(decoded) != string(payload) {
		t.Errorf("decoded payload mismatch")
	}
}

func TestBase58CheckDecodeRejectsCorruption(t *testing.T) {
	addr := Base58CheckEncode(0x00, []byte{1, 2, 3, 4, 5})
	corrupted := []byte(addr)
	corrupted[len(corrupted)-1]++
	if _, _, err := Base58CheckDecode(string(corrupted)); err == nil {
		t.Errorf("expected checksum mismatch to fail decoding")
	}
}
