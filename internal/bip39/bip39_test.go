package bip39

import (
	"encoding/hex"
	"testing"
)

func TestMnemonicFromAllZeroEntropy(t *testing.T) {
	entropy := make([]byte, 16) // 128 bits, all zero
	mnemonic, err := MnemonicFromEntropy(entropy)
	if err != nil {
		t.Fatalf("MnemonicFromEntropy: %v", err)
	}

	want := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	if mnemonic != want {
		t.Errorf("mnemonic = %q, want %q", mnemonic, want)
	}
	if !ValidateMnemonic(mnemonic) {
		t.Errorf("expected generated mnemonic to validate")
	}
}

func TestSeedFromMnemonicTrezorVector(t *testing.T) {
	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	seed, err := SeedFromMnemonic(mnemonic, "TREZOR")
	if err != nil {
		t.Fatalf("SeedFromMnemonic: %v", err)
	}
	if len(seed) != 64 {
		t.Fatalf("seed length = %d, want 64", len(seed))
	}

	want, err := hex.DecodeString("c55257c360c07c72029aebc1b53c05ed0362ada38ead3e3e9efa3708e53495531f09a6987599d18264c1e1c92f2cf141630c7a3c4ab7c81b2f001698e7463b04")
	if err != nil {
		t.Fatal(err)
	}
	if hex.EncodeToString(seed) != hex.EncodeToString(want) {
		t.Errorf("seed = %x, want %x", seed, want)
	}
}

func TestSeedFromMnemonicDeterministic(t *testing.T) {
	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	a, err := SeedFromMnemonic(mnemonic, "")
	if err != nil {
		t.Fatal(err)
	}
	b, err := SeedFromMnemonic(mnemonic, "")
	if err != nil {
		t.Fatal(err)
	}
	if hex.EncodeToString(a) != hex.EncodeToString(b) {
		t.Errorf("SeedFromMnemonic is not deterministic")
	}
}

func TestValidateMnemonicRejectsBadChecksum(t *testing.T) {
	if ValidateMnemonic("abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon") {
		t.Errorf("expected 12-word list with wrong checksum word to be invalid")
	}
}

func TestWordInList(t *testing.T) {
	if !WordInList("abandon") {
		t.Errorf("expected 'abandon' to be in the wordlist")
	}
	if WordInList("notarealbip39word") {
		t.Errorf("expected unknown word to be rejected")
	}
}
