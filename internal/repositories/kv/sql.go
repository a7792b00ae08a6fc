package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/dmitrijs2005/memorymap/internal/dbx"
)

type dialect struct {
	get    string
	upsert string
	del    string
}

var (
	sqliteDialect = dialect{
		get: `SELECT value FROM kv_store WHERE key = ?`,
		upsert: `
		INSERT INTO kv_store (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		del: `DELETE FROM kv_store WHERE key = ?`,
	}

	postgresDialect = dialect{
		get: `SELECT value FROM kv_store WHERE key = $1`,
		upsert: `
		INSERT INTO kv_store (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		del: `DELETE FROM kv_store WHERE key = $1`,
	}
)

// SQLRepository keeps values in the kv_store table of a SQL database.
type SQLRepository struct {
	db *sql.DB
	q  dialect
}

// NewSQLiteRepository binds a repository to a SQLite database.
func NewSQLiteRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db, q: sqliteDialect}
}

// NewPostgresRepository binds a repository to a PostgreSQL database opened
// through the pgx stdlib driver.
func NewPostgresRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db, q: postgresDialect}
}

func (r *SQLRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, r.q.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLRepository) Set(ctx context.Context, key string, value []byte) error {
	return r.set(ctx, r.db, key, value)
}

func (r *SQLRepository) set(ctx context.Context, db dbx.DBTX, key string, value []byte) error {
	if _, err := db.ExecContext(ctx, r.q.upsert, key, value); err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, r.q.del, key); err != nil {
		return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
	}
	return nil
}

// SetBatch upserts all values in one transaction.
func (r *SQLRepository) SetBatch(ctx context.Context, values map[string][]byte) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, k := range sortedKeys(values) {
			if err := r.set(ctx, tx, k, values[k]); err != nil {
				return err
			}
		}
		return nil
	})
}

func sortedKeys(m map[string][]byte) []string {
	return slices.Sorted(maps.Keys(m))
}
