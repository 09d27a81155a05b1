package hdkey

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/erickherrera/CriptoGualet-sub001/internal/coreerr"
)

// ParseDerivationPath parses a string of the form
// "m[/<num>[']|['h]]*" into a slice of BIP-32 child indices, setting the
// hardened bit (HardenedOffset) for any segment suffixed with ' or h.
// Accepts any chain's path, not just a fixed coin type.
func ParseDerivationPath(path string) ([]uint32, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == "m" {
		return []uint32{}, nil
	}

	segments := strings.Split(path, "/")
	start := 0
	if segments[0] == "m" {
		start = 1
	} else if segments[0] != "" {
		return nil, coreerr.New(coreerr.InvalidPath, fmt.Sprintf("relative paths must not have a prefix before the first segment: %q", path))
	}

	out := make([]uint32, 0, len(segments)-start)
	for _, seg := range segments[start:] {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			return nil, coreerr.New(coreerr.InvalidPath, fmt.Sprintf("empty path segment in %q", path))
		}

		hardened := false
		if strings.HasSuffix(seg, "'") || strings.HasSuffix(seg, "h") || strings.HasSuffix(seg, "H") {
			hardened = true
			seg = seg[:len(seg)-1]
		}

		n, err := strconv.ParseUint(seg, 10, 32)
		if err != nil {
			return nil, coreerr.Wrap(coreerr.InvalidPath, fmt.Sprintf("invalid path index %q", seg), err)
		}
		if n >= uint64(HardenedOffset) {
			return nil, coreerr.New(coreerr.InvalidPath, fmt.Sprintf("path index %d is ambiguous with the hardened bit; use a smaller index", n))
		}

		idx := uint32(n)
		if hardened {
			idx += HardenedOffset
		}
		out = append(out, idx)
	}
	return out, nil
}

// StrictParseDerivationPath parses path and panics on error — used only
// at call sites with a compile-time-constant path literal.
func StrictParseDerivationPath(path string) []uint32 {
	parsed, err := ParseDerivationPath(path)
	if err != nil {
		panic(err)
	}
	return parsed
}

// FormatDerivationPath renders path back to its canonical "m/44'/60'/..."
// string form.
func FormatDerivationPath(path []uint32) string {
	var b strings.Builder
	b.WriteString("m")
	for _, idx := range path {
		b.WriteString("/")
		if idx >= HardenedOffset {
			b.WriteString(strconv.FormatUint(uint64(idx-HardenedOffset), 10))
			b.WriteString("'")
		} else {
			b.WriteString(strconv.FormatUint(uint64(idx), 10))
		}
	}
	return b.String()
}
