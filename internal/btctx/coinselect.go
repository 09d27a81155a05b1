// Package btctx implements the legacy (non-SegWit) Bitcoin transaction
// engine: largest-first coin selection, P2PKH scriptPubKey construction,
// legacy SIGHASH_ALL signing, and final serialization, built on
// btcsuite/btcd's wire and txscript packages.
package btctx

import (
	"sort"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/erickherrera/CriptoGualet-sub001/internal/coreerr"
)

// DustThreshold is the minimum change output value; change below this is
// dropped and rolled into the fee instead.
const DustThreshold = int64(546)

// UTXO is a spendable previous output.
type UTXO struct {
	TxHash       chainhash.Hash
	Vout         uint32
	Value        int64 // satoshis
	ScriptPubKey []byte
}

// SelectionResult is the outcome of coin selection: the inputs chosen, the
// computed fee, and the change amount (0 if change was rolled into the fee).
type SelectionResult struct {
	Inputs []UTXO
	Fee    int64
	Change int64
}

// EstimateSize returns the conservative worst-case size of a
// compressed-pubkey P2PKH transaction: 4 + 1 + 148·nIn + 1 + 34·nOut + 4
// bytes.
func EstimateSize(nIn, nOut int) int64 {
	return 4 + 1 + 148*int64(nIn) + 1 + 34*int64(nOut) + 4
}

// SelectCoins picks UTXOs largest-first until the sum covers target plus
// the fee for the resulting input/output set, recomputing the fee after
// each inclusion. If the leftover change would be dust, it is dropped and
// rolled into the fee instead of becoming an output. Fails with
// InsufficientFunds if no subset of utxos covers target plus its fee.
func SelectCoins(utxos []UTXO, targetSats, feePerByte int64) (SelectionResult, error) {
	sorted := append([]UTXO(nil), utxos...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Value > sorted[j].Value })

	var chosen []UTXO
	var sum int64
	for _, u := range sorted {
		chosen = append(chosen, u)
		sum += u.Value

		feeNoChange := EstimateSize(len(chosen), 1) * feePerByte
		if sum < targetSats+feeNoChange {
			continue
		}
		// Keep a change output only if it is not dust once its own output's
		// fee is paid; otherwise roll the residue into the fee.
		feeWithChange := EstimateSize(len(chosen), 2) * feePerByte
		change := sum - targetSats - feeWithChange
		if change < DustThreshold {
			return SelectionResult{Inputs: chosen, Fee: sum - targetSats, Change: 0}, nil
		}
		return SelectionResult{Inputs: chosen, Fee: feeWithChange, Change: change}, nil
	}
	return SelectionResult{}, coreerr.New(coreerr.InsufficientFunds, "no subset of the available UTXOs covers the target amount plus fee")
}
