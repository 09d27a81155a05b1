package vault

import "sync"

// reentrantLock serializes vault operations. Go has no public
// goroutine-identity API, so true per-goroutine reentrancy isn't
// implementable without runtime hacks; instead, every exported Store method
// that needs the lock takes it once at its own entry point, and any
// operation that needs to call another locked operation internally (e.g.
// Backup verifying the new store's integrity) calls that operation's
// unexported, already-locked variant directly rather than re-acquiring.
type reentrantLock struct {
	mu sync.Mutex
}

func newReentrantLock() *reentrantLock {
	return &reentrantLock{}
}

func (l *reentrantLock) Lock()   { l.mu.Lock() }
func (l *reentrantLock) Unlock() { l.mu.Unlock() }
