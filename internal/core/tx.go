package core

import (
	"context"
	"math/big"

	"github.com/erickherrera/CriptoGualet-sub001/internal/auth"
	"github.com/erickherrera/CriptoGualet-sub001/internal/btctx"
	"github.com/erickherrera/CriptoGualet-sub001/internal/chain"
	"github.com/erickherrera/CriptoGualet-sub001/internal/coreerr"
	"github.com/erickherrera/CriptoGualet-sub001/internal/encoding"
	"github.com/erickherrera/CriptoGualet-sub001/internal/evmtx"
	"github.com/erickherrera/CriptoGualet-sub001/internal/primitive"
)

// requireSpendConfirmation re-verifies password against sessionID's owning
// user before any fund-moving operation, independent of whatever master
// key is already cached for the session — spending demands a fresh
// password proof; address derivation does not.
func (c *Core) requireSpendConfirmation(ctx context.Context, sessionID, password string) error {
	sess, err := c.requireActiveSession(ctx, sessionID)
	if err != nil {
		return err
	}
	user, err := c.Vault.GetUserByID(ctx, sess.UserID)
	if err != nil {
		return err
	}
	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		return coreerr.New(coreerr.InvalidCredentials, "invalid password")
	}
	return nil
}

// BuildAndSignBTCTx derives the single signing key at
// m/44'/coinType'/account'/change/index, selects coins from utxos, builds
// a legacy P2PKH transaction paying amountSats to toAddr with change back
// to the signing key's own address, and signs it.
// This engine only ever signs with one key per
// transaction (internal/btctx's own constraint), so the caller identifies
// the controlling key by derivation coordinates rather than by an
// arbitrary fromAddrs list.
func (c *Core) BuildAndSignBTCTx(ctx context.Context, sessionID, password, chainKey string, account, change, index uint32,
	utxos []btctx.UTXO, toAddr string, amountSats, feePerByte int64) (rawHex, txid string, err error) {

	if err := c.requireSpendConfirmation(ctx, sessionID, password); err != nil {
		return "", "", err
	}
	master, err := c.masterKeyFor(sessionID)
	if err != nil {
		return "", "", err
	}
	params, err := chain.Lookup(chainKey)
	if err != nil {
		return "", "", err
	}
	if params.Family != chain.FamilyBitcoin {
		return "", "", coreerr.New(coreerr.InvalidInput, "chain is not a Bitcoin-family chain")
	}

	path := append(params.DerivationPath(account), change, index)
	child, err := master.DeriveAt(path)
	if err != nil {
		return "", "", err
	}
	compressedPub, err := child.CompressedPubKey()
	if err != nil {
		return "", "", err
	}
	changeHash160 := primitive.Hash160(compressedPub)
	changeScript, err := btctx.P2PKHScript(changeHash160[:])
	if err != nil {
		return "", "", err
	}

	toPayload, toVersion, derr := encoding.Base58CheckDecode(toAddr)
	if derr != nil || toVersion != params.P2PKHVersion || len(toPayload) != 20 {
		return "", "", coreerr.New(coreerr.InvalidInput, "destination address is not a valid address for this chain")
	}
	toScript, err := btctx.P2PKHScript(toPayload)
	if err != nil {
		return "", "", err
	}

	selection, err := btctx.SelectCoins(utxos, amountSats, feePerByte)
	if err != nil {
		return "", "", err
	}
	outputs := []btctx.Output{{Value: amountSats, ScriptPubKey: toScript}}

	tx, err := btctx.BuildAndSign(selection, outputs, changeScript, child.Key, compressedPub)
	if err != nil {
		return "", "", err
	}

	raw, err := btctx.Serialize(tx)
	if err != nil {
		return "", "", err
	}
	c.Vault.Audit("build_and_sign_btc_tx", "chain="+params.Name)
	return encoding.HexEncode(raw), btctx.TxID(tx), nil
}

// BuildAndSignEVMTx derives the single signing key at
// m/44'/60'/account'/change/index, builds an EIP-155 legacy transaction,
// and signs it. The nonce, gas price, and gas limit are caller-supplied —
// obtaining them is the EVM explorer collaborator's job, not this
// engine's.
func (c *Core) BuildAndSignEVMTx(ctx context.Context, sessionID, password string, account, change, index uint32,
	nonce uint64, to []byte, valueWei *big.Int, gasPriceWei *big.Int, gasLimit, chainID uint64, data []byte) (rawHex string, err error) {

	if err := c.requireSpendConfirmation(ctx, sessionID, password); err != nil {
		return "", err
	}
	master, err := c.masterKeyFor(sessionID)
	if err != nil {
		return "", err
	}
	params := chain.Table[chain.Ethereum]

	path := append(params.DerivationPath(account), change, index)
	child, err := master.DeriveAt(path)
	if err != nil {
		return "", err
	}

	tx := evmtx.Tx{
		Nonce:    nonce,
		GasPrice: gasPriceWei,
		GasLimit: gasLimit,
		To:       to,
		Value:    valueWei,
		Data:     data,
	}
	signed, err := evmtx.Sign(tx, chainID, child.Key)
	if err != nil {
		return "", err
	}
	raw, err := signed.Serialize()
	if err != nil {
		return "", err
	}
	c.Vault.Audit("build_and_sign_evm_tx", "chain_id="+big.NewInt(0).SetUint64(chainID).String())
	return raw, nil
}
