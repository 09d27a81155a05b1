package encoding

import (
	"math/big"

	ethrlp "github.com/ethereum/go-ethereum/rlp"
)

// RLPEncodeList encodes items — each either a []byte, uint64, or *big.Int —
// as an RLP list, per the Ethereum yellow paper rules (single byte < 0x80
// encodes to itself; string/list length thresholds at 56 bytes switch
// between the short and long prefix forms). Delegated to go-ethereum's rlp
// package, which implements exactly this algorithm for its own
// Transaction encoding.
func RLPEncodeList(items ...interface{}) ([]byte, error) {
	normalized := make([]interface{}, len(items))
	for i, item := range items {
		switch v := item.(type) {
		case *big.Int:
			if v == nil {
				normalized[i] = new(big.Int)
			} else {
				normalized[i] = v
			}
		default:
			normalized[i] = v
		}
	}
	return ethrlp.EncodeToBytes(normalized)
}

// RLPEncodeBytes encodes a single byte string per the RLP string rules.
func RLPEncodeBytes(data []byte) ([]byte, error) {
	return ethrlp.EncodeToBytes(data)
}
