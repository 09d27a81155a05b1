package primitive

import "testing"

func TestTOTPVectorT59(t *testing.T) {
	secret := []byte("12345678901234567890")
	got := TOTPAt(secret, 59)
	want := "287082"
	if got != want {
		t.Errorf("TOTPAt(secret, 59) = %s, want %s", got, want)
	}
	if !TOTPVerify(secret, 59, want) {
		t.Errorf("TOTPVerify rejected the correct code at t=59")
	}
}

func TestTOTPVerifyToleratesDrift(t *testing.T) {
	secret := []byte("12345678901234567890")
	code := TOTPAt(secret, 59)
	// One step (30s) away must still verify; two steps away must not.
	if !TOTPVerify(secret, 59+totpStep, code) {
		t.Errorf("expected code to verify within +1 step drift")
	}
	if TOTPVerify(secret, 59+2*totpStep, code) {
		t.Errorf("expected code to be rejected outside the drift window")
	}
}
