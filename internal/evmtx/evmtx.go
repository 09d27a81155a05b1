// Package evmtx implements the EIP-155 legacy (type-0) EVM transaction
// engine: RLP sighash, recoverable signing, and final RLP serialization.
// The v byte folds the chain id per EIP-155, using the signature's real
// recovery id — a Homestead-style signer that assumes rec_id 0 produces
// raw transactions that fail recovery about half the time.
package evmtx

import (
	"math/big"

	"github.com/erickherrera/CriptoGualet-sub001/internal/coreerr"
	"github.com/erickherrera/CriptoGualet-sub001/internal/encoding"
	"github.com/erickherrera/CriptoGualet-sub001/internal/primitive"
)

// Tx is the subset of an Ethereum legacy transaction this engine signs.
// To is nil for a contract-creation transaction.
type Tx struct {
	Nonce    uint64
	GasPrice *big.Int
	GasLimit uint64
	To       []byte // 20 bytes, or nil
	Value    *big.Int
	Data     []byte
}

func (tx Tx) toField() []byte {
	if tx.To == nil {
		return []byte{}
	}
	return tx.To
}

// Sighash computes Keccak256(RLP([nonce, gasPrice, gasLimit, to, value,
// data, chainId, 0, 0])), the EIP-155 legacy signing hash.
func Sighash(tx Tx, chainID uint64) ([32]byte, error) {
	encoded, err := encoding.RLPEncodeList(
		tx.Nonce, tx.GasPrice, tx.GasLimit, tx.toField(), tx.Value, tx.Data,
		chainID, uint64(0), uint64(0),
	)
	if err != nil {
		return [32]byte{}, coreerr.Wrap(coreerr.CryptoFailure, "RLP encoding of sighash preimage failed", err)
	}
	return primitive.Keccak256(encoded), nil
}

// SignedTx is the result of signing: the original fields plus the
// signature's v, r, s components.
type SignedTx struct {
	Tx
	V *big.Int
	R *big.Int
	S *big.Int
}

// Sign computes the EIP-155 signature over tx: (r, s, rec_id) =
// recoverable_sign(priv, sighash), v = chainId*2 + 35 + rec_id. rec_id is
// taken from the real recoverable signature, not hardcoded to 0.
func Sign(tx Tx, chainID uint64, priv []byte) (SignedTx, error) {
	hash, err := Sighash(tx, chainID)
	if err != nil {
		return SignedTx{}, err
	}

	ctx := primitive.NewSecp256k1Context()
	r, s, recID, err := ctx.SignRecoverable(priv, hash[:])
	if err != nil {
		return SignedTx{}, coreerr.Wrap(coreerr.CryptoFailure, "EVM transaction signing failed", err)
	}

	v := new(big.Int).SetUint64(chainID)
	v.Mul(v, big.NewInt(2))
	v.Add(v, big.NewInt(35+int64(recID)))

	return SignedTx{
		Tx: tx,
		V:  v,
		R:  new(big.Int).SetBytes(r),
		S:  new(big.Int).SetBytes(s),
	}, nil
}

// Serialize returns the 0x-prefixed hex of RLP([nonce, gasPrice, gasLimit,
// to, value, data, v, r, s]), the final signed-transaction wire form.
func (tx SignedTx) Serialize() (string, error) {
	encoded, err := encoding.RLPEncodeList(
		tx.Nonce, tx.GasPrice, tx.GasLimit, tx.toField(), tx.Value, tx.Data,
		tx.V, tx.R, tx.S,
	)
	if err != nil {
		return "", coreerr.Wrap(coreerr.CryptoFailure, "RLP encoding of signed transaction failed", err)
	}
	return encoding.HexEncode(encoded), nil
}
