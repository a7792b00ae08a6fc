// Package repomanager opens the configured key-value backend: it connects to
// the database or object store, applies the embedded goose migrations for
// SQL backends, and hands back a kv.Repository plus its closer.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/dmitrijs2005/memorymap/internal/filex"
	pgmigrations "github.com/dmitrijs2005/memorymap/internal/migrations/postgres"
	sqlitemigrations "github.com/dmitrijs2005/memorymap/internal/migrations/sqlite"
	"github.com/dmitrijs2005/memorymap/internal/repositories/kv"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Backend names a kv.Repository implementation.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendS3       Backend = "s3"
	BackendMemory   Backend = "memory"
)

// ParseBackend accepts the names above, case-insensitively.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendSQLite, BackendPostgres, BackendS3, BackendMemory:
		return b, nil
	default:
		return "", fmt.Errorf("unknown storage backend %q", s)
	}
}

// Options select and configure a backend. Only the fields of the selected
// backend are read.
type Options struct {
	Backend     Backend
	SQLitePath  string
	PostgresDSN string
	S3          kv.S3Options
}

// CloseFunc releases the backend's resources.
type CloseFunc func() error

func noopClose() error { return nil }

// Seams for tests.
var (
	sqlOpen        = sql.Open
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return goose.UpContext(ctx, db, dir, opts...)
	}
	newS3API = func(ctx context.Context, o kv.S3Options) (kv.ObjectAPI, error) {
		return kv.NewS3Client(ctx, o)
	}
)

// goose keeps its base FS and dialect in package state.
var gooseMu sync.Mutex

func runMigrations(ctx context.Context, db *sql.DB, fsys fs.FS, dialect string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// RunSQLiteMigrations applies the embedded SQLite schema.
func RunSQLiteMigrations(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, db, sqlitemigrations.Migrations, "sqlite3")
}

// RunPostgresMigrations applies the embedded PostgreSQL schema.
func RunPostgresMigrations(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, db, pgmigrations.Migrations, "pgx")
}

// Open connects the backend named in o.
func Open(ctx context.Context, o Options) (kv.Repository, CloseFunc, error) {
	switch o.Backend {
	case BackendMemory:
		return kv.NewMemoryRepository(), noopClose, nil

	case BackendSQLite, "":
		path, err := filex.EnsureParentDir(o.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("prepare sqlite path: %w", err)
		}
		db, err := openSQL(ctx, "sqlite", path, RunSQLiteMigrations)
		if err != nil {
			return nil, nil, err
		}
		return kv.NewSQLiteRepository(db), db.Close, nil

	case BackendPostgres:
		if o.PostgresDSN == "" {
			return nil, nil, fmt.Errorf("postgres backend requires a DSN")
		}
		db, err := openSQL(ctx, "pgx", o.PostgresDSN, RunPostgresMigrations)
		if err != nil {
			return nil, nil, err
		}
		return kv.NewPostgresRepository(db), db.Close, nil

	case BackendS3:
		if o.S3.Bucket == "" {
			return nil, nil, fmt.Errorf("s3 backend requires a bucket")
		}
		api, err := newS3API(ctx, o.S3)
		if err != nil {
			return nil, nil, err
		}
		return kv.NewS3Repository(api, o.S3.Bucket, o.S3.Prefix), noopClose, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", o.Backend)
	}
}

func openSQL(ctx context.Context, driver, dsn string, migrate func(context.Context, *sql.DB) error) (*sql.DB, error) {
	db, err := sqlOpen(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
