package primitive

import "crypto/subtle"

// SecureZero overwrites buf with zeros in place. The loop form (rather than
// a slice-fill builtin) plus touching every byte individually is a standard
// defeat for a compiler that might otherwise dead-store-eliminate a trailing
// write to a buffer it can prove is never read again.
func SecureZero(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}

// Zeroizing wraps a byte slice that MUST be wiped when it is no longer
// needed. Private keys, seeds, passwords, and derived keys use this type
// so the wipe obligation is carried on the type rather than remembered at
// every call site.
type Zeroizing struct {
	b []byte
}

// NewZeroizing takes ownership of b; the caller must not retain other
// references to the backing array.
func NewZeroizing(b []byte) *Zeroizing {
	return &Zeroizing{b: b}
}

// Bytes returns the live backing slice. It is invalidated by Wipe.
func (z *Zeroizing) Bytes() []byte {
	if z == nil {
		return nil
	}
	return z.b
}

// Wipe zeroes the backing bytes and releases the reference. Safe to call
// more than once and on a nil receiver.
func (z *Zeroizing) Wipe() {
	if z == nil || z.b == nil {
		return
	}
	SecureZero(z.b)
	z.b = nil
}

// ConstantTimeCompare reports whether a and b are equal, in time
// independent of where they first differ. Used by TOTPVerify, by the
// email verification-code check, and by the vault's RotateKey key-hash
// check; password hashes are compared with crypto/subtle directly in
// internal/auth.
func ConstantTimeCompare(a, b []byte) bool {
	return len(a) == len(b) && subtle.ConstantTimeCompare(a, b) == 1
}
