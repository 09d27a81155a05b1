package core

import (
	"context"

	"github.com/erickherrera/CriptoGualet-sub001/internal/address"
	"github.com/erickherrera/CriptoGualet-sub001/internal/chain"
	"github.com/erickherrera/CriptoGualet-sub001/internal/coreerr"
	"github.com/erickherrera/CriptoGualet-sub001/internal/hdkey"
)

// ListWalletChains returns the chain table, letting a caller populate a
// chain picker without hardcoding version bytes.
func ListWalletChains() map[chain.ID]chain.Params {
	return chain.Table
}

// deriveKeyAndAddress walks the full m/44'/coinType'/account'/change/index
// path from master and returns the resulting address for params' family.
func deriveKeyAndAddress(master *hdkey.ExtendedKey, params chain.Params, account, change, index uint32) (string, error) {
	path := append(params.DerivationPath(account), change, index)
	child, err := master.DeriveAt(path)
	if err != nil {
		return "", err
	}

	switch params.Family {
	case chain.FamilyBitcoin:
		pub, err := child.CompressedPubKey()
		if err != nil {
			return "", err
		}
		return address.FromCompressedPubkey(params, pub)
	case chain.FamilyEVM:
		pub, err := child.UncompressedPubKey()
		if err != nil {
			return "", err
		}
		return address.FromUncompressedPubkey(pub)
	default:
		return "", coreerr.New(coreerr.InvalidInput, "unknown chain family")
	}
}

// DeriveAddress derives and returns a single address at
// m/44'/coinType'/account'/change/index for sessionId's cached master
// key.
func (c *Core) DeriveAddress(ctx context.Context, sessionID, chainKey string, account, change, index uint32) (string, error) {
	if _, err := c.requireActiveSession(ctx, sessionID); err != nil {
		return "", err
	}
	master, err := c.masterKeyFor(sessionID)
	if err != nil {
		return "", err
	}
	params, err := chain.Lookup(chainKey)
	if err != nil {
		return "", err
	}
	return deriveKeyAndAddress(master, params, account, change, index)
}

// DeriveBatch derives count consecutive addresses starting at startIndex,
// checking cancel before each one — long derivation runs have no other
// cancellation facility. A true return from cancel stops the batch early
// and returns the addresses derived so far with no error.
func (c *Core) DeriveBatch(ctx context.Context, sessionID, chainKey string, account, change, startIndex, count uint32, cancel func() bool) ([]string, error) {
	if _, err := c.requireActiveSession(ctx, sessionID); err != nil {
		return nil, err
	}
	master, err := c.masterKeyFor(sessionID)
	if err != nil {
		return nil, err
	}
	params, err := chain.Lookup(chainKey)
	if err != nil {
		return nil, err
	}

	addrs := make([]string, 0, count)
	for i := uint32(0); i < count; i++ {
		if cancel != nil && cancel() {
			break
		}
		addr, err := deriveKeyAndAddress(master, params, account, change, startIndex+i)
		if err != nil {
			return addrs, err
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}
