// Package vault implements the encrypted relational store: a process-wide
// SQLite handle behind a single vault-wide lock, schema migrations, envelope
// encryption for seed/key columns, integrity checking, backup, and an
// audit log, on `github.com/mattn/go-sqlite3` over `database/sql`.
package vault

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/erickherrera/CriptoGualet-sub001/internal/coreerr"
)

// maxParamsPerStatement and maxParamBytes cap what a single statement may
// bind; callers of Exec/Query must not exceed either.
const (
	maxParamsPerStatement = 100
	maxParamBytes         = 1 << 20 // 1 MB
	statementTimeout      = 30 * time.Second
)

// Store is the process-wide vault handle. It owns the *sql.DB and a
// vault-wide lock (reentrantLock, a plain non-reentrant mutex; see
// lock.go). database/sql already serializes individual connections — the
// lock here serializes higher-level multi-statement operations such as
// migrations and backups.
type Store struct {
	db      *sql.DB
	log     *zap.SugaredLogger
	lock    *reentrantLock
	audit   *auditLog
	keyHash [32]byte // SHA-256 of the open key, for RotateKey's old-key check
}

// Open opens (creating if absent) a SQLite-backed vault at path, applies
// its pragma set, runs pending migrations, and returns the ready Store.
// key must be at least 32 bytes; Open records only its SHA-256 (for
// RotateKey's current-key check) and encrypts nothing with it. Plain
// mattn/go-sqlite3 has no native page encryption, so envelope encryption
// (EncryptBlob/DecryptBlob, under per-user password-derived keys) is the
// sole at-rest protection for seed/key columns. A SQLCipher-style driver would additionally take the
// page-cipher pragmas here.
func Open(ctx context.Context, path string, key []byte, log *zap.SugaredLogger) (*Store, error) {
	if len(key) < 32 {
		return nil, coreerr.New(coreerr.InvalidInput, "vault encryption key must be at least 32 bytes")
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.SystemError, "failed to open vault database", err)
	}
	db.SetMaxOpenConns(1) // SQLite + our own reentrant lock: one writer at a time

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA secure_delete = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = FULL",
		"PRAGMA cache_size = -65536", // 64 MB, negative = KiB
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, coreerr.Wrap(coreerr.SystemError, fmt.Sprintf("failed to apply pragma %q", p), err)
		}
	}

	s := &Store{
		db:      db,
		log:     log,
		lock:    newReentrantLock(),
		audit:   newAuditLog(1000),
		keyHash: sha256.Sum256(key),
	}

	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close rolls back any pending transaction implicitly (database/sql does
// this on connection close) and releases the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// execTimeout wraps ctx with the 30-second statement watchdog.
func execTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, statementTimeout)
}

// validateParams enforces the statement binding caps.
func validateParams(args []interface{}) error {
	if len(args) > maxParamsPerStatement {
		return coreerr.New(coreerr.InvalidInput, "too many bound parameters")
	}
	for _, a := range args {
		if b, ok := a.([]byte); ok && len(b) > maxParamBytes {
			return coreerr.New(coreerr.InvalidInput, "bound parameter exceeds 1 MB")
		}
	}
	return nil
}

// IntegrityCheck runs PRAGMA integrity_check(100) and PRAGMA
// foreign_key_check; any violation is reported as VaultCorrupt.
func (s *Store) IntegrityCheck(ctx context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.integrityCheckLocked(ctx)
}

// integrityCheckLocked is IntegrityCheck's body, assuming the caller
// already holds s.lock — used by Backup to verify a freshly built
// destination store without a nested Lock call.
func (s *Store) integrityCheckLocked(ctx context.Context) error {
	ctx, cancel := execTimeout(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx, "PRAGMA integrity_check(100)")
	var result string
	if err := row.Scan(&result); err != nil {
		return coreerr.Wrap(coreerr.VaultCorrupt, "integrity_check query failed", err)
	}
	if result != "ok" {
		return coreerr.New(coreerr.VaultCorrupt, "integrity_check reported: "+result)
	}

	rows, err := s.db.QueryContext(ctx, "PRAGMA foreign_key_check")
	if err != nil {
		return coreerr.Wrap(coreerr.VaultCorrupt, "foreign_key_check query failed", err)
	}
	defer rows.Close()
	if rows.Next() {
		return coreerr.New(coreerr.VaultCorrupt, "foreign_key_check reported a violation")
	}
	return rows.Err()
}
