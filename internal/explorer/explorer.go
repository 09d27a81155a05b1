// Package explorer defines the external collaborator interfaces the core
// consumes: Bitcoin-family and
// EVM block-explorer clients, and a mail transport for 2FA codes. The core
// never implements these itself — it is constructed with a collaborator
// satisfying each interface, keeping it testable with in-memory fakes.
package explorer

import (
	"context"
	"time"

	"github.com/erickherrera/CriptoGualet-sub001/internal/btctx"
)

// TxSummary is a minimal transaction history entry, common to both chain
// families.
type TxSummary struct {
	Hash      string
	Timestamp time.Time
	Value     string // decimal string: satoshis or wei, to avoid precision loss
	Confirmed bool
}

// BitcoinExplorer is the Bitcoin-family block-explorer collaborator.
type BitcoinExplorer interface {
	GetUTXOs(ctx context.Context, address string) ([]btctx.UTXO, error)
	GetTxHistory(ctx context.Context, address string, limit int) ([]TxSummary, error)
	EstimateFeePerByte(ctx context.Context) (uint64, error)
	BroadcastRaw(ctx context.Context, rawHex string) (txid string, err error)
}

// GasOracle is the {safe, propose, fast} gwei triple an explorer's gas
// oracle endpoint reports.
type GasOracle struct {
	Safe, Propose, Fast uint64
}

// EVMExplorer is the EVM-family block-explorer collaborator.
type EVMExplorer interface {
	GetBalance(ctx context.Context, address string) (weiString string, err error)
	GetTxCount(ctx context.Context, address string) (nonce uint64, err error)
	GetGasOracle(ctx context.Context) (GasOracle, error)
	GetHistory(ctx context.Context, address string, limit int) ([]TxSummary, error)
	SendRawTransaction(ctx context.Context, rawHex string) (txHash string, err error)
}

// Mailer is the email/2FA transport collaborator: the core leaves
// TLS, auth, and credential retrieval to the caller, passing only
// plain template-rendered text.
type Mailer interface {
	SendMail(ctx context.Context, to, subject, body string) error
}
