package vault

import (
	"context"
	"crypto/sha256"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/erickherrera/CriptoGualet-sub001/internal/coreerr"
)

// batchSize is the row-copy batch size for Backup.
const batchSize = 100

// Backup creates a new store at destPath with the same schema, copies rows
// table-by-table in batchSize-row batches (standing in for SQLite's native
// page-level backup API, which mattn/go-sqlite3's database/sql wrapper
// doesn't expose directly), and verifies the new store's integrity before
// returning success.
func (s *Store) Backup(ctx context.Context, destPath string, key []byte, log *zap.SugaredLogger) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	ctx, cancel := execTimeout(ctx)
	defer cancel()

	dest, err := sql.Open("sqlite3", destPath)
	if err != nil {
		return coreerr.Wrap(coreerr.SystemError, "open backup destination", err)
	}
	defer dest.Close()

	destStore := &Store{db: dest, log: log, lock: newReentrantLock(), audit: newAuditLog(1000), keyHash: sha256.Sum256(key)}
	if err := destStore.migrate(ctx); err != nil {
		return coreerr.Wrap(coreerr.SystemError, "apply schema to backup destination", err)
	}

	for _, table := range []string{"users", "wallets", "sessions", "erc20_tokens"} {
		if err := copyTable(ctx, s.db, dest, table); err != nil {
			return coreerr.Wrap(coreerr.SystemError, "copy table "+table, err)
		}
	}

	if err := destStore.integrityCheckLocked(ctx); err != nil {
		return err
	}
	return nil
}

// copyTable copies all rows of table from src to dst in batchSize batches,
// using SELECT * / column introspection so it needs no per-table schema
// knowledge beyond the column list.
func copyTable(ctx context.Context, src, dst *sql.DB, table string) error {
	rows, err := src.QueryContext(ctx, "SELECT * FROM "+table)
	if err != nil {
		return err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return err
	}
	placeholders := make([]byte, 0, len(cols)*2)
	for i := range cols {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	insertSQL := "INSERT INTO " + table + " VALUES (" + string(placeholders) + ")"

	values := make([]interface{}, len(cols))
	ptrs := make([]interface{}, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	batch := 0
	tx, err := dst.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			tx.Rollback()
			return err
		}
		if _, err := tx.ExecContext(ctx, insertSQL, values...); err != nil {
			tx.Rollback()
			return err
		}
		batch++
		if batch >= batchSize {
			if err := tx.Commit(); err != nil {
				return err
			}
			tx, err = dst.BeginTx(ctx, nil)
			if err != nil {
				return err
			}
			batch = 0
		}
	}
	if err := rows.Err(); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
