package auth

import (
	"sync"
	"time"

	"github.com/erickherrera/CriptoGualet-sub001/internal/coreerr"
)

// maxLoginAttempts, attemptWindow, and lockoutDuration bound failed login
// attempts per identifier. attemptWindow and lockoutDuration
// are deliberately distinct: attemptWindow slides the count of failures
// being accumulated toward the trip threshold, lockoutDuration is the
// penalty applied once that threshold is reached.
const (
	maxLoginAttempts = 5
	attemptWindow    = time.Minute
	lockoutDuration  = 10 * time.Minute
)

type attemptRecord struct {
	count        int
	windowEnd    time.Time
	lockoutUntil time.Time
}

// RateLimiter tracks failed attempts per identifier (username, email, or
// IP) in memory.
type RateLimiter struct {
	mu       sync.Mutex
	attempts map[string]*attemptRecord
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{attempts: make(map[string]*attemptRecord)}
}

// RecordFailure registers a failed attempt for identifier, returning the
// number of attempts remaining before lockout, or RateLimited once the
// limit is reached within the 1-minute attempt window.
func (r *RateLimiter) RecordFailure(identifier string) (remaining int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	rec, ok := r.attempts[identifier]
	if ok && now.Before(rec.lockoutUntil) {
		return 0, coreerr.New(coreerr.RateLimited, formatRetryAfter(int(rec.lockoutUntil.Sub(now).Seconds())))
	}
	if !ok || now.After(rec.windowEnd) {
		rec = &attemptRecord{windowEnd: now.Add(attemptWindow)}
		r.attempts[identifier] = rec
	}
	rec.count++

	if rec.count >= maxLoginAttempts {
		rec.lockoutUntil = now.Add(lockoutDuration)
		return 0, coreerr.New(coreerr.RateLimited, formatRetryAfter(int(lockoutDuration.Seconds())))
	}
	return maxLoginAttempts - rec.count, nil
}

// Clear resets the failure count for identifier, called after a
// successful login.
func (r *RateLimiter) Clear(identifier string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.attempts, identifier)
}

// Check reports whether identifier is currently locked out without
// recording a new attempt.
func (r *RateLimiter) Check(identifier string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	rec, ok := r.attempts[identifier]
	if !ok {
		return nil
	}
	if now.Before(rec.lockoutUntil) {
		return coreerr.New(coreerr.RateLimited, formatRetryAfter(int(rec.lockoutUntil.Sub(now).Seconds())))
	}
	return nil
}

func formatRetryAfter(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return "retry_after=" + time.Duration(seconds*int(time.Second)).String()
}
