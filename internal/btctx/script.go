package btctx

import (
	"github.com/btcsuite/btcd/txscript"
	"github.com/erickherrera/CriptoGualet-sub001/internal/coreerr"
)

// P2PKHScript builds the standard pay-to-pubkey-hash scriptPubKey:
// OP_DUP OP_HASH160 <20-byte pkh> OP_EQUALVERIFY OP_CHECKSIG, i.e.
// 76 A9 14 <pkh> 88 AC. Built with txscript's builder rather than a raw
// byte literal, so the opcode sequence is self-documenting.
func P2PKHScript(pubKeyHash []byte) ([]byte, error) {
	if len(pubKeyHash) != 20 {
		return nil, coreerr.New(coreerr.InvalidInput, "pubkey hash must be 20 bytes")
	}
	script, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_DUP).
		AddOp(txscript.OP_HASH160).
		AddData(pubKeyHash).
		AddOp(txscript.OP_EQUALVERIFY).
		AddOp(txscript.OP_CHECKSIG).
		Script()
	if err != nil {
		return nil, coreerr.Wrap(coreerr.CryptoFailure, "failed to build P2PKH script", err)
	}
	return script, nil
}
