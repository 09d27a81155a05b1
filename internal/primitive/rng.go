package primitive

import (
	"crypto/rand"
	"fmt"
)

// RandomBytes fills and returns a slice of n bytes from the OS CSPRNG.
// There is no user-controlled seed path. Any failure here is fatal to the
// caller; wrap it as coreerr.SystemError at the subsystem boundary.
func RandomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("primitive: CSPRNG read failed: %w", err)
	}
	return buf, nil
}

// RandomUint32InRange returns a uniformly distributed uint32 in [lo, hi)
// using rejection sampling to avoid modulo bias. Used for 6-digit email
// verification codes.
func RandomUint32InRange(lo, hi uint32) (uint32, error) {
	if hi <= lo {
		return 0, fmt.Errorf("primitive: invalid range [%d, %d)", lo, hi)
	}
	span := hi - lo
	// Largest multiple of span that fits in uint32, to reject the biased tail.
	limit := (1 << 32) / uint64(span) * uint64(span)

	for {
		b, err := RandomBytes(4)
		if err != nil {
			return 0, err
		}
		v := uint64(b[0])<<24 | uint64(b[1])<<16 | uint64(b[2])<<8 | uint64(b[3])
		if v < limit {
			return lo + uint32(v%uint64(span)), nil
		}
	}
}
