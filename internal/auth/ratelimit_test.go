package auth

import "testing"

func TestRateLimiterLocksOutAfterMaxAttempts(t *testing.T) {
	rl := NewRateLimiter()
	var lastErr error
	for i := 0; i < maxLoginAttempts; i++ {
		_, lastErr = rl.RecordFailure("alice")
	}
	if lastErr == nil {
		t.Fatalf("expected RateLimited after %d failures", maxLoginAttempts)
	}
	if err := rl.Check("alice"); err == nil {
		t.Errorf("expected Check to report lockout")
	}
}

func TestRateLimiterClearResetsCount(t *testing.T) {
	rl := NewRateLimiter()
	rl.RecordFailure("bob")
	rl.Clear("bob")
	if err := rl.Check("bob"); err != nil {
		t.Errorf("expected no lockout after Clear: %v", err)
	}
}
