package primitive

import (
	"encoding/base32"
	"encoding/binary"
	"strings"
)

// TOTP parameters per RFC 6238: HMAC-SHA-1, 30-second step, 6 digits,
// ±1 window for clock drift.
const (
	totpStep       = 30
	totpDigits     = 6
	totpDriftSteps = 1
)

// Base32Encode encodes secret using unpadded RFC 4648 base32, the form
// used for TOTP shared-secret provisioning strings (e.g. otpauth:// URIs).
func Base32Encode(secret []byte) string {
	return strings.TrimRight(base32.StdEncoding.EncodeToString(secret), "=")
}

// Base32Decode decodes an RFC 4648 base32 string, tolerating a missing
// padding suffix.
func Base32Decode(s string) ([]byte, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if n := len(s) % 8; n != 0 {
		s += strings.Repeat("=", 8-n)
	}
	return base32.StdEncoding.DecodeString(s)
}

// TOTPAt computes the 6-digit TOTP code for secret at Unix time t.
func TOTPAt(secret []byte, t int64) string {
	counter := uint64(t / totpStep)
	return hotp(secret, counter)
}

// TOTPVerify reports whether code matches the TOTP for secret at time t,
// accepting the current window and ±1 adjacent window to tolerate clock
// drift between client and server.
func TOTPVerify(secret []byte, t int64, code string) bool {
	base := t / totpStep
	for delta := -totpDriftSteps; delta <= totpDriftSteps; delta++ {
		counter := uint64(base + int64(delta))
		if ConstantTimeCompare([]byte(hotp(secret, counter)), []byte(code)) {
			return true
		}
	}
	return false
}

// hotp implements RFC 4226 HOTP: HMAC-SHA1 over the big-endian counter,
// dynamic truncation, and decimal modulus to totpDigits digits.
func hotp(secret []byte, counter uint64) string {
	msg := make([]byte, 8)
	binary.BigEndian.PutUint64(msg, counter)

	digest := HMACSHA1(secret, msg)

	offset := digest[len(digest)-1] & 0x0f
	truncated := binary.BigEndian.Uint32(digest[offset:offset+4]) & 0x7fffffff

	mod := uint32(1)
	for i := 0; i < totpDigits; i++ {
		mod *= 10
	}
	code := truncated % mod

	out := make([]byte, totpDigits)
	for i := totpDigits - 1; i >= 0; i-- {
		out[i] = byte('0' + code%10)
		code /= 10
	}
	return string(out)
}
