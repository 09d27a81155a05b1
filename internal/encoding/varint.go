package encoding

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/wire"
)

// VarIntEncode encodes val as a Bitcoin VarInt (0xFD/0xFE/0xFF discriminated
// compact size), delegating to btcd/wire's own wire-format writer so our
// encoding matches the one btcd/txscript and btcd/wire use when they
// serialize the transactions internal/btctx builds.
func VarIntEncode(val uint64) []byte {
	var buf bytes.Buffer
	// WriteVarInt never touches the protocol-version-gated fields of the
	// compact size encoding, so the pver argument is inert here.
	if err := wire.WriteVarInt(&buf, wire.ProtocolVersion, val); err != nil {
		// Writing to a bytes.Buffer cannot fail.
		panic(fmt.Sprintf("encoding: VarIntEncode: %v", err))
	}
	return buf.Bytes()
}

// VarIntDecode reads a VarInt from the front of data, returning the value
// and the number of bytes consumed.
func VarIntDecode(data []byte) (val uint64, consumed int, err error) {
	r := bytes.NewReader(data)
	val, err = wire.ReadVarInt(r, wire.ProtocolVersion)
	if err != nil {
		return 0, 0, fmt.Errorf("encoding: VarIntDecode: %w", err)
	}
	return val, len(data) - r.Len(), nil
}
