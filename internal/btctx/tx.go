package btctx

import (
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/erickherrera/CriptoGualet-sub001/internal/coreerr"
	"github.com/erickherrera/CriptoGualet-sub001/internal/primitive"
)

// Output is a single spend target: value in satoshis and its scriptPubKey.
type Output struct {
	Value        int64
	ScriptPubKey []byte
}

// BuildAndSign assembles a legacy (non-SegWit) transaction spending
// selection's inputs to outputs (plus a change output back to
// changeScript when selection.Change > 0), signs every input with priv
// under SIGHASH_ALL, and returns the finished transaction.
//
// priv must be the private key controlling every input in selection —
// this repo only ever builds single-signer transactions.
func BuildAndSign(selection SelectionResult, outputs []Output, changeScript []byte, priv, compressedPubKey []byte) (*wire.MsgTx, error) {
	tx := wire.NewMsgTx(wire.TxVersion)

	for _, in := range selection.Inputs {
		outPoint := wire.NewOutPoint(&in.TxHash, in.Vout)
		tx.AddTxIn(wire.NewTxIn(outPoint, nil, nil))
	}
	for _, out := range outputs {
		tx.AddTxOut(wire.NewTxOut(out.Value, out.ScriptPubKey))
	}
	if selection.Change > 0 {
		tx.AddTxOut(wire.NewTxOut(selection.Change, changeScript))
	}

	for i, in := range selection.Inputs {
		sigScript, err := signInput(tx, i, in.ScriptPubKey, priv, compressedPubKey)
		if err != nil {
			return nil, err
		}
		tx.TxIn[i].SignatureScript = sigScript
	}
	return tx, nil
}

// signInput computes the legacy SIGHASH_ALL sighash for input idx (every
// other input's scriptSig blanked, this input's scriptSig set to the
// previous output's scriptPubKey, sighash type 0x00000001 appended,
// double-SHA-256), signs it, and assembles the P2PKH scriptSig
// push(DER‖0x01) ‖ push(compressedPubKey).
func signInput(tx *wire.MsgTx, idx int, prevScriptPubKey, priv, compressedPubKey []byte) ([]byte, error) {
	sigHash, err := txscript.CalcSignatureHash(prevScriptPubKey, txscript.SigHashAll, tx, idx)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.CryptoFailure, "sighash calculation failed", err)
	}

	ctx := primitive.NewSecp256k1Context()
	der, _, _, err := ctx.Sign(priv, sigHash)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.CryptoFailure, "signing failed", err)
	}
	sigWithType := append(append([]byte(nil), der...), byte(txscript.SigHashAll))

	return txscript.NewScriptBuilder().
		AddData(sigWithType).
		AddData(compressedPubKey).
		Script()
}

// TxID returns the display (byte-reversed) double-SHA-256 txid of tx,
// hex-encoded — wire's own TxHash already performs the reversal via
// chainhash.Hash's String method.
func TxID(tx *wire.MsgTx) string {
	h := tx.TxHash()
	return h.String()
}

// Serialize returns the raw wire-format bytes of tx.
func Serialize(tx *wire.MsgTx) ([]byte, error) {
	buf := make([]byte, 0, tx.SerializeSize())
	w := &byteSliceWriter{buf: buf}
	if err := tx.Serialize(w); err != nil {
		return nil, coreerr.Wrap(coreerr.SystemError, "tx serialization failed", err)
	}
	return w.buf, nil
}

// byteSliceWriter adapts a growable []byte to io.Writer for wire's
// Serialize, avoiding a bytes.Buffer import for a single append loop.
type byteSliceWriter struct{ buf []byte }

func (w *byteSliceWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}
