package auth

import (
	"fmt"
	"sync"
	"time"

	"github.com/erickherrera/CriptoGualet-sub001/internal/coreerr"
	"github.com/erickherrera/CriptoGualet-sub001/internal/primitive"
)

const (
	codeExpiry       = 10 * time.Minute
	codeResendWindow = 60 * time.Second
	maxCodeAttempts  = 5
)

type verificationRecord struct {
	code      string
	expiresAt time.Time
	attempts  int
	lastSent  time.Time
}

// VerificationStore tracks email-verification codes per username,
// in-memory like RateLimiter.
type VerificationStore struct {
	mu      sync.Mutex
	records map[string]*verificationRecord
}

func NewVerificationStore() *VerificationStore {
	return &VerificationStore{records: make(map[string]*verificationRecord)}
}

// IssueCode generates a new 6-digit code uniform over [100000, 999999],
// rate-limited to one send per 60s, and stores it with a 10-minute expiry.
func (v *VerificationStore) IssueCode(username string) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	now := time.Now().UTC()
	if rec, ok := v.records[username]; ok {
		if now.Sub(rec.lastSent) < codeResendWindow {
			remaining := int(codeResendWindow - now.Sub(rec.lastSent))
			return "", coreerr.New(coreerr.RateLimited, fmt.Sprintf("retry_after=%s", time.Duration(remaining)))
		}
	}

	n, err := primitive.RandomUint32InRange(100000, 1000000)
	if err != nil {
		return "", coreerr.Wrap(coreerr.CryptoFailure, "verification code generation failed", err)
	}
	code := fmt.Sprintf("%06d", n)

	v.records[username] = &verificationRecord{
		code:      code,
		expiresAt: now.Add(codeExpiry),
		attempts:  0,
		lastSent:  now,
	}
	return code, nil
}

// VerifyCodeOutcome is the result of Verify.
type VerifyCodeOutcome int

const (
	VerifyOK VerifyCodeOutcome = iota
	VerifyExpired
	VerifyInvalid
	VerifyExhausted
)

// Verify checks code against the stored record for username, invalidating
// the record after 5 wrong attempts.
func (v *VerificationStore) Verify(username, code string) VerifyCodeOutcome {
	v.mu.Lock()
	defer v.mu.Unlock()

	rec, ok := v.records[username]
	if !ok {
		return VerifyInvalid
	}
	if rec.attempts >= maxCodeAttempts {
		return VerifyExhausted
	}
	if time.Now().UTC().After(rec.expiresAt) {
		delete(v.records, username)
		return VerifyExpired
	}
	if !primitive.ConstantTimeCompare([]byte(rec.code), []byte(code)) {
		rec.attempts++
		if rec.attempts >= maxCodeAttempts {
			delete(v.records, username)
			return VerifyExhausted
		}
		return VerifyInvalid
	}
	delete(v.records, username)
	return VerifyOK
}
