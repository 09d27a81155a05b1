package explorer

import (
	"context"
	"errors"

	"github.com/erickherrera/CriptoGualet-sub001/internal/btctx"
)

// errNotConfigured is returned by the Noop collaborators below. Real
// block-explorer HTTP clients are outside this module's scope — the core
// owns only the interface contract; these exist so cmd/skms
// has something concrete to construct a Core with until an operator wires
// in a real client satisfying BitcoinExplorer/EVMExplorer.
var errNotConfigured = errors.New("no block explorer configured")

// NoopBitcoinExplorer satisfies BitcoinExplorer by reporting every call as
// unavailable. Commands that need live chain data (fetching UTXOs,
// broadcasting) fail with coreerr.ExternalUnavailable until a real
// implementation is substituted.
type NoopBitcoinExplorer struct{}

func (NoopBitcoinExplorer) GetUTXOs(ctx context.Context, address string) ([]btctx.UTXO, error) {
	return nil, errNotConfigured
}
func (NoopBitcoinExplorer) GetTxHistory(ctx context.Context, address string, limit int) ([]TxSummary, error) {
	return nil, errNotConfigured
}
func (NoopBitcoinExplorer) EstimateFeePerByte(ctx context.Context) (uint64, error) {
	return 0, errNotConfigured
}
func (NoopBitcoinExplorer) BroadcastRaw(ctx context.Context, rawHex string) (string, error) {
	return "", errNotConfigured
}

// NoopEVMExplorer satisfies EVMExplorer the same way NoopBitcoinExplorer
// satisfies BitcoinExplorer.
type NoopEVMExplorer struct{}

func (NoopEVMExplorer) GetBalance(ctx context.Context, address string) (string, error) {
	return "", errNotConfigured
}
func (NoopEVMExplorer) GetTxCount(ctx context.Context, address string) (uint64, error) {
	return 0, errNotConfigured
}
func (NoopEVMExplorer) GetGasOracle(ctx context.Context) (GasOracle, error) {
	return GasOracle{}, errNotConfigured
}
func (NoopEVMExplorer) GetHistory(ctx context.Context, address string, limit int) ([]TxSummary, error) {
	return nil, errNotConfigured
}
func (NoopEVMExplorer) SendRawTransaction(ctx context.Context, rawHex string) (string, error) {
	return "", errNotConfigured
}
