package encoding

import "math/big"

// BigEndianMinimal encodes n as the shortest big-endian byte string with no
// leading zero byte; zero encodes to an empty slice. This is the integer
// encoding RLP (and several vault/tx fields) build on top of.
func BigEndianMinimal(n *big.Int) []byte {
	if n == nil || n.Sign() == 0 {
		return []byte{}
	}
	return n.Bytes() // big.Int.Bytes() is already minimal, no leading zero.
}

// BigEndianMinimalUint64 is the uint64 convenience form of BigEndianMinimal.
func BigEndianMinimalUint64(n uint64) []byte {
	if n == 0 {
		return []byte{}
	}
	return new(big.Int).SetUint64(n).Bytes()
}
