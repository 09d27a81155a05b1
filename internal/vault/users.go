package vault

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/erickherrera/CriptoGualet-sub001/internal/coreerr"
)

// User is the `users` table row. The associated wallet's encrypted seed
// is read separately, through GetEncryptedSeed.
type User struct {
	ID               int64
	Username         string
	Email            string
	PasswordHash     string
	EmailVerified    bool
	TwoFactorEnabled bool
	CreatedAt        time.Time
	LastLogin        *time.Time
}

// InsertUserWithWallet commits a new user row and its wallet row
// (encrypted seed) in one transaction, so a registration can never leave a
// user without a wallet.
func (s *Store) InsertUserWithWallet(ctx context.Context, username, email, passwordHash string, encryptedSeed, keySalt []byte) (userID int64, err error) {
	if err := validateParams([]interface{}{username, email, passwordHash, encryptedSeed, keySalt}); err != nil {
		return 0, err
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	ctx, cancel := execTimeout(ctx)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, coreerr.Wrap(coreerr.SystemError, "begin transaction", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := tx.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		username, email, passwordHash, now)
	if err != nil {
		tx.Rollback()
		if isUniqueViolation(err) {
			return 0, coreerr.New(coreerr.AlreadyExists, "username or email already registered")
		}
		return 0, coreerr.Wrap(coreerr.SystemError, "insert user", err)
	}
	uid, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return 0, coreerr.Wrap(coreerr.SystemError, "read inserted user id", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO wallets (user_id, encrypted_seed, key_salt, created_at) VALUES (?, ?, ?, ?)`,
		uid, encryptedSeed, keySalt, now); err != nil {
		tx.Rollback()
		return 0, coreerr.Wrap(coreerr.SystemError, "insert wallet", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, coreerr.Wrap(coreerr.SystemError, "commit registration", err)
	}
	return uid, nil
}

// GetUserByUsername reads a user row, or NotFound if absent.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	ctx, cancel := execTimeout(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, email_verified, two_factor_enabled, created_at, last_login
		 FROM users WHERE username = ?`, username)

	var u User
	var createdAt string
	var lastLogin sql.NullString
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.EmailVerified, &u.TwoFactorEnabled, &createdAt, &lastLogin); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, coreerr.New(coreerr.NotFound, "user not found")
		}
		return nil, coreerr.Wrap(coreerr.SystemError, "query user", err)
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		u.CreatedAt = t.UTC()
	}
	if lastLogin.Valid {
		if t, err := time.Parse(time.RFC3339, lastLogin.String); err == nil {
			t = t.UTC()
			u.LastLogin = &t
		}
	}
	return &u, nil
}

// GetUserByID reads a user row by id, or NotFound if absent.
func (s *Store) GetUserByID(ctx context.Context, userID int64) (*User, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	ctx, cancel := execTimeout(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, email_verified, two_factor_enabled, created_at, last_login
		 FROM users WHERE id = ?`, userID)

	var u User
	var createdAt string
	var lastLogin sql.NullString
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.EmailVerified, &u.TwoFactorEnabled, &createdAt, &lastLogin); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, coreerr.New(coreerr.NotFound, "user not found")
		}
		return nil, coreerr.Wrap(coreerr.SystemError, "query user", err)
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		u.CreatedAt = t.UTC()
	}
	if lastLogin.Valid {
		if t, err := time.Parse(time.RFC3339, lastLogin.String); err == nil {
			t = t.UTC()
			u.LastLogin = &t
		}
	}
	return &u, nil
}

// SetEmailVerified flips a user's email_verified flag on, the effect of a
// successful verification-code check.
func (s *Store) SetEmailVerified(ctx context.Context, userID int64) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	ctx, cancel := execTimeout(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `UPDATE users SET email_verified = 1 WHERE id = ?`, userID)
	if err != nil {
		return coreerr.Wrap(coreerr.SystemError, "set email_verified", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return coreerr.New(coreerr.NotFound, "user not found")
	}
	return nil
}

// UpdateLastLogin advances a user's last_login to now (UTC).
func (s *Store) UpdateLastLogin(ctx context.Context, userID int64) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	ctx, cancel := execTimeout(ctx)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `UPDATE users SET last_login = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), userID)
	if err != nil {
		return coreerr.Wrap(coreerr.SystemError, "update last_login", err)
	}
	return nil
}

// GetEncryptedSeed reads the wallet's encrypted seed blob and its
// key-derivation salt for userID.
func (s *Store) GetEncryptedSeed(ctx context.Context, userID int64) (encryptedSeed, keySalt []byte, err error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	ctx, cancel := execTimeout(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx, `SELECT encrypted_seed, key_salt FROM wallets WHERE user_id = ?`, userID)
	if err := row.Scan(&encryptedSeed, &keySalt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, coreerr.New(coreerr.NotFound, "wallet not found")
		}
		return nil, nil, coreerr.Wrap(coreerr.SystemError, "query wallet", err)
	}
	return encryptedSeed, keySalt, nil
}

// ReplaceEncryptedSeed atomically overwrites the stored seed blob and key
// salt, the commit step of a wallet restore.
func (s *Store) ReplaceEncryptedSeed(ctx context.Context, userID int64, encryptedSeed, keySalt []byte) error {
	if err := validateParams([]interface{}{encryptedSeed, keySalt}); err != nil {
		return err
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	ctx, cancel := execTimeout(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `UPDATE wallets SET encrypted_seed = ?, key_salt = ? WHERE user_id = ?`, encryptedSeed, keySalt, userID)
	if err != nil {
		return coreerr.Wrap(coreerr.SystemError, "replace encrypted seed", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return coreerr.New(coreerr.NotFound, "wallet not found")
	}
	return nil
}

// UpdatePasswordHash overwrites a user's stored password hash.
func (s *Store) UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	ctx, cancel := execTimeout(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, userID)
	if err != nil {
		return coreerr.Wrap(coreerr.SystemError, "update password hash", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return coreerr.New(coreerr.NotFound, "user not found")
	}
	return nil
}

// UpdateCredentials replaces a user's password hash and their wallet's
// encrypted seed blob in one transaction, so a password change can never
// leave the login hash and the seed encryption keyed to different
// passwords.
func (s *Store) UpdateCredentials(ctx context.Context, userID int64, passwordHash string, encryptedSeed, keySalt []byte) error {
	if err := validateParams([]interface{}{passwordHash, encryptedSeed, keySalt}); err != nil {
		return err
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	ctx, cancel := execTimeout(ctx)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return coreerr.Wrap(coreerr.SystemError, "begin transaction", err)
	}

	res, err := tx.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, userID)
	if err != nil {
		tx.Rollback()
		return coreerr.Wrap(coreerr.SystemError, "update password hash", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		tx.Rollback()
		return coreerr.New(coreerr.NotFound, "user not found")
	}

	res, err = tx.ExecContext(ctx, `UPDATE wallets SET encrypted_seed = ?, key_salt = ? WHERE user_id = ?`, encryptedSeed, keySalt, userID)
	if err != nil {
		tx.Rollback()
		return coreerr.Wrap(coreerr.SystemError, "replace encrypted seed", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		tx.Rollback()
		return coreerr.New(coreerr.NotFound, "wallet not found")
	}

	if err := tx.Commit(); err != nil {
		return coreerr.Wrap(coreerr.SystemError, "commit credential update", err)
	}
	return nil
}

// SetTwoFactorEnabled toggles whether login requires an emailed
// verification code before a session is issued.
func (s *Store) SetTwoFactorEnabled(ctx context.Context, userID int64, enabled bool) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	ctx, cancel := execTimeout(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `UPDATE users SET two_factor_enabled = ? WHERE id = ?`, enabled, userID)
	if err != nil {
		return coreerr.Wrap(coreerr.SystemError, "set two_factor_enabled", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return coreerr.New(coreerr.NotFound, "user not found")
	}
	return nil
}

// DeleteUser removes the user (and, via ON DELETE CASCADE, its wallet and
// sessions).
func (s *Store) DeleteUser(ctx context.Context, username string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	ctx, cancel := execTimeout(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE username = ?`, username)
	if err != nil {
		return coreerr.Wrap(coreerr.SystemError, "delete user", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return coreerr.New(coreerr.NotFound, "user not found")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	// mattn/go-sqlite3 surfaces constraint violations as sqlite3.Error with
	// ExtendedCode == sqlite3.ErrConstraintUnique; string-matching keeps
	// this file free of a direct sqlite3-package import for one check.
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
