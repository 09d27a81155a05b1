// Package chain holds the fixed table of chains this wallet knows how to
// derive for: BIP-44 coin type, address family, and Bitcoin-family P2PKH
// version byte.
package chain

import "github.com/erickherrera/CriptoGualet-sub001/internal/coreerr"

// Family distinguishes the address/transaction family a chain belongs to.
type Family int

const (
	FamilyBitcoin Family = iota
	FamilyEVM
)

// ID names one of the chains this wallet supports.
type ID int

const (
	BitcoinMainnet ID = iota
	BitcoinTestnet
	LitecoinMainnet
	LitecoinTestnet
	Ethereum
)

// Params describes one chain's BIP-44 coin type, address family, and
// (for Bitcoin-family chains) P2PKH version byte.
type Params struct {
	ID              ID
	Name            string
	CoinType        uint32
	Family          Family
	P2PKHVersion    byte   // meaningful only when Family == FamilyBitcoin
	AddressPrefixes string // first characters a P2PKH address on this chain may start with
}

// Table is the fixed chain table. Avalanche-C and other EVM-compatible
// chains (BSC, Polygon, Arbitrum, Optimism, Base) all share Ethereum's
// entry: SLIP-44 assigns every EVM-compatible chain coin type 60, and
// diverging from that would silently derive addresses incompatible with
// other wallets.
var Table = map[ID]Params{
	BitcoinMainnet: {
		ID: BitcoinMainnet, Name: "Bitcoin mainnet", CoinType: 0,
		Family: FamilyBitcoin, P2PKHVersion: 0x00, AddressPrefixes: "13",
	},
	BitcoinTestnet: {
		ID: BitcoinTestnet, Name: "Bitcoin testnet", CoinType: 1,
		Family: FamilyBitcoin, P2PKHVersion: 0x6F, AddressPrefixes: "mn2",
	},
	LitecoinMainnet: {
		ID: LitecoinMainnet, Name: "Litecoin mainnet", CoinType: 2,
		Family: FamilyBitcoin, P2PKHVersion: 0x30, AddressPrefixes: "LM3",
	},
	LitecoinTestnet: {
		ID: LitecoinTestnet, Name: "Litecoin testnet", CoinType: 1,
		Family: FamilyBitcoin, P2PKHVersion: 0x6F, AddressPrefixes: "mn2",
	},
	Ethereum: {
		ID: Ethereum, Name: "Ethereum / EVM", CoinType: 60,
		Family: FamilyEVM,
	},
}

// byName resolves a short, case-sensitive chain key ("btc", "eth", ...)
// to its ID, for CLI flag parsing.
var byName = map[string]ID{
	"btc":      BitcoinMainnet,
	"btc-test": BitcoinTestnet,
	"ltc":      LitecoinMainnet,
	"ltc-test": LitecoinTestnet,
	"eth":      Ethereum,
	"evm":      Ethereum,
}

// Lookup resolves a short chain key ("btc", "eth", ...) to its Params.
func Lookup(key string) (Params, error) {
	id, ok := byName[key]
	if !ok {
		return Params{}, coreerr.New(coreerr.InvalidInput, "unknown chain key: "+key)
	}
	return Table[id], nil
}

// DerivationPath returns the BIP-44 account-level hardened prefix
// m/44'/coinType'/account' for p.
func (p Params) DerivationPath(account uint32) []uint32 {
	const hardened = uint32(0x80000000)
	return []uint32{44 + hardened, p.CoinType + hardened, account + hardened}
}
