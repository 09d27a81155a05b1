package chain

import "testing"

func TestTableMatchesSpecVersionBytes(t *testing.T) {
	cases := []struct {
		id     ID
		want   byte
		family Family
		coin   uint32
	}{
		{BitcoinMainnet, 0x00, FamilyBitcoin, 0},
		{BitcoinTestnet, 0x6F, FamilyBitcoin, 1},
		{LitecoinMainnet, 0x30, FamilyBitcoin, 2},
		{LitecoinTestnet, 0x6F, FamilyBitcoin, 1},
	}
	for _, c := range cases {
		p := Table[c.id]
		if p.P2PKHVersion != c.want {
			t.Errorf("%s: version byte = 0x%02x, want 0x%02x", p.Name, p.P2PKHVersion, c.want)
		}
		if p.Family != c.family {
			t.Errorf("%s: family = %v, want %v", p.Name, p.Family, c.family)
		}
		if p.CoinType != c.coin {
			t.Errorf("%s: coin type = %d, want %d", p.Name, p.CoinType, c.coin)
		}
	}
}

func TestEthereumCoinTypeIsSLIP44(t *testing.T) {
	if Table[Ethereum].CoinType != 60 {
		t.Errorf("Ethereum coin type = %d, want 60 per SLIP-44", Table[Ethereum].CoinType)
	}
}

func TestLookupUnknownKeyFails(t *testing.T) {
	if _, err := Lookup("dogecoin"); err == nil {
		t.Errorf("expected Lookup of an unknown chain key to fail")
	}
}

func TestDerivationPathHardensAllThreeSegments(t *testing.T) {
	p := Table[Ethereum]
	path := p.DerivationPath(0)
	const hardened = uint32(0x80000000)
	want := []uint32{44 + hardened, 60 + hardened, 0 + hardened}
	if len(path) != 3 {
		t.Fatalf("path length = %d, want 3", len(path))
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("path[%d] = %d, want %d", i, path[i], want[i])
		}
	}
}
