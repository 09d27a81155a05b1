package btctx

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/erickherrera/CriptoGualet-sub001/internal/primitive"
)

func TestBuildAndSignProducesVerifiableSignature(t *testing.T) {
	priv, err := primitive.RandomBytes(32)
	if err != nil {
		t.Fatal(err)
	}
	ctx := primitive.NewSecp256k1Context()
	compressedPub, _, err := ctx.PubkeyFromSecret(priv)
	if err != nil {
		t.Fatal(err)
	}
	pkh := primitive.Hash160(compressedPub)
	scriptPubKey, err := P2PKHScript(pkh[:])
	if err != nil {
		t.Fatal(err)
	}

	selection := SelectionResult{
		Inputs: []UTXO{{TxHash: chainhash.Hash{}, Vout: 0, Value: 100000, ScriptPubKey: scriptPubKey}},
		Fee:    226,
		Change: 0,
	}
	outputs := []Output{{Value: 99774, ScriptPubKey: scriptPubKey}}

	tx, err := BuildAndSign(selection, outputs, nil, priv, compressedPub)
	if err != nil {
		t.Fatalf("BuildAndSign: %v", err)
	}
	if len(tx.TxIn) != 1 || len(tx.TxIn[0].SignatureScript) == 0 {
		t.Fatalf("expected one signed input, got %+v", tx.TxIn)
	}

	if id := TxID(tx); len(id) != 64 {
		t.Errorf("TxID length = %d, want 64 hex chars", len(id))
	}

	raw, err := Serialize(tx)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) == 0 {
		t.Error("expected non-empty serialized transaction")
	}
}

func TestP2PKHScriptRejectsWrongLength(t *testing.T) {
	if _, err := P2PKHScript([]byte{1, 2, 3}); err == nil {
		t.Errorf("expected error for a pubkey hash that isn't 20 bytes")
	}
}
