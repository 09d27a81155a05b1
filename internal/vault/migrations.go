package vault

import (
	"context"

	"github.com/erickherrera/CriptoGualet-sub001/internal/coreerr"
)

// migration is one ordered schema change.
type migration struct {
	version     int
	description string
	sql         string
}

// migrations is the fixed, ascending-ordered migration list for the
// schema_version/users/wallets/sessions/erc20_tokens tables.
var migrations = []migration{
	{
		version:     1,
		description: "initial schema",
		sql: `
CREATE TABLE users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	email_verified INTEGER NOT NULL DEFAULT 0,
	two_factor_enabled INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	last_login TEXT
);

CREATE TABLE wallets (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	encrypted_seed BLOB NOT NULL,
	key_salt BLOB NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE sessions (
	id TEXT PRIMARY KEY,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	state TEXT NOT NULL,
	created_at TEXT NOT NULL,
	expires_at TEXT NOT NULL,
	last_activity TEXT NOT NULL
);

CREATE TABLE erc20_tokens (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	chain_id INTEGER NOT NULL,
	contract_address TEXT NOT NULL,
	symbol TEXT NOT NULL,
	decimals INTEGER NOT NULL,
	UNIQUE (chain_id, contract_address)
);
`,
	},
}

// migrate applies every migration with version > the stored
// schema_version in ascending order, each inside its own transaction,
// bumping schema_version on success and rolling back on any failure.
func (s *Store) migrate(ctx context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (id INTEGER PRIMARY KEY CHECK (id = 1), version INTEGER NOT NULL)`); err != nil {
		return coreerr.Wrap(coreerr.SystemError, "failed to ensure schema_version table", err)
	}

	current, err := s.currentVersion(ctx)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := s.applyMigration(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) currentVersion(ctx context.Context) (int, error) {
	row := s.db.QueryRowContext(ctx, `SELECT version FROM schema_version WHERE id = 1`)
	var v int
	if err := row.Scan(&v); err != nil {
		return 0, nil // no row yet; first migration will insert it
	}
	return v, nil
}

func (s *Store) applyMigration(ctx context.Context, m migration) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return coreerr.Wrap(coreerr.SystemError, "failed to begin migration transaction", err)
	}

	if _, err := tx.ExecContext(ctx, m.sql); err != nil {
		tx.Rollback()
		return coreerr.Wrap(coreerr.SystemError, "migration "+m.description+" failed", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_version (id, version) VALUES (1, ?) ON CONFLICT(id) DO UPDATE SET version = excluded.version`, m.version); err != nil {
		tx.Rollback()
		return coreerr.Wrap(coreerr.SystemError, "failed to record schema_version after migration "+m.description, err)
	}
	if err := tx.Commit(); err != nil {
		return coreerr.Wrap(coreerr.SystemError, "failed to commit migration "+m.description, err)
	}
	return nil
}
