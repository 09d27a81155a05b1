package core

import (
	"context"

	"github.com/erickherrera/CriptoGualet-sub001/internal/btctx"
	"github.com/erickherrera/CriptoGualet-sub001/internal/coreerr"
	"github.com/erickherrera/CriptoGualet-sub001/internal/explorer"
)

// wrapExternal converts any error from an explorer/mailer collaborator
// into coreerr.ExternalUnavailable — transport, serialization, and HTTP
// failures are all the same retriable kind to the core.
func wrapExternal(err error) error {
	if err == nil {
		return nil
	}
	return coreerr.Wrap(coreerr.ExternalUnavailable, "explorer request failed", err)
}

// FetchBTCUTXOs retrieves address's spendable outputs through the configured
// Bitcoin-family explorer, ready to pass into BuildAndSignBTCTx.
func (c *Core) FetchBTCUTXOs(ctx context.Context, address string) ([]btctx.UTXO, error) {
	utxos, err := c.btcExplorer.GetUTXOs(ctx, address)
	return utxos, wrapExternal(err)
}

// BTCTxHistory retrieves up to limit historical transactions for address.
func (c *Core) BTCTxHistory(ctx context.Context, address string, limit int) ([]explorer.TxSummary, error) {
	hist, err := c.btcExplorer.GetTxHistory(ctx, address, limit)
	return hist, wrapExternal(err)
}

// EstimateBTCFeePerByte returns the explorer's current satoshi/byte fee
// estimate, a reasonable default for BuildAndSignBTCTx's feePerByte argument.
func (c *Core) EstimateBTCFeePerByte(ctx context.Context) (int64, error) {
	fee, err := c.btcExplorer.EstimateFeePerByte(ctx)
	if err != nil {
		return 0, wrapExternal(err)
	}
	return int64(fee), nil
}

// BroadcastBTCTx submits rawHex to the network and returns its txid.
func (c *Core) BroadcastBTCTx(ctx context.Context, rawHex string) (txid string, err error) {
	txid, err = c.btcExplorer.BroadcastRaw(ctx, rawHex)
	if err != nil {
		return "", wrapExternal(err)
	}
	c.Vault.Audit("broadcast_btc_tx", "txid="+txid)
	return txid, nil
}

// EVMBalance returns address's balance in wei, as a decimal string.
func (c *Core) EVMBalance(ctx context.Context, address string) (string, error) {
	bal, err := c.evmExplorer.GetBalance(ctx, address)
	return bal, wrapExternal(err)
}

// EVMNonce returns address's next transaction count, a reasonable default
// for BuildAndSignEVMTx's nonce argument.
func (c *Core) EVMNonce(ctx context.Context, address string) (uint64, error) {
	nonce, err := c.evmExplorer.GetTxCount(ctx, address)
	return nonce, wrapExternal(err)
}

// EVMGasOracle returns the explorer's {safe, propose, fast} gwei estimate.
func (c *Core) EVMGasOracle(ctx context.Context) (explorer.GasOracle, error) {
	oracle, err := c.evmExplorer.GetGasOracle(ctx)
	return oracle, wrapExternal(err)
}

// EVMTxHistory retrieves up to limit historical transactions for address.
func (c *Core) EVMTxHistory(ctx context.Context, address string, limit int) ([]explorer.TxSummary, error) {
	hist, err := c.evmExplorer.GetHistory(ctx, address, limit)
	return hist, wrapExternal(err)
}

// BroadcastEVMTx submits rawHex to the network and returns its transaction
// hash.
func (c *Core) BroadcastEVMTx(ctx context.Context, rawHex string) (txHash string, err error) {
	txHash, err = c.evmExplorer.SendRawTransaction(ctx, rawHex)
	if err != nil {
		return "", wrapExternal(err)
	}
	c.Vault.Audit("broadcast_evm_tx", "tx_hash="+txHash)
	return txHash, nil
}
