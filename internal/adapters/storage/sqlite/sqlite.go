// Package sqlite provides a SQLite-backed implementation of ports.Store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	sqlitedriver "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/jsamuelsen/quote-lab/internal/domain"
	"github.com/jsamuelsen/quote-lab/internal/ports"
)

// Ensure Store implements ports.Store.
var _ ports.Store = (*Store)(nil)

// Config holds SQLite connection settings.
type Config struct {
	// Path is the database file. ":memory:" is not supported because every
	// pooled connection would see its own database.
	Path string

	// BusyTimeoutMS is how long a writer waits for a lock before failing.
	BusyTimeoutMS int
}

// Store implements ports.Store using SQLite.
type Store struct {
	db      *sql.DB
	authors *authorRepo
	quotes  *quoteRepo
}

// New opens the database at cfg.Path, creating parent directories, and
// applies the schema.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{
		db:      db,
		authors: &authorRepo{db: db},
		quotes:  &quoteRepo{db: db},
	}, nil
}

// dsn sets the pragmas through the connection string so every pooled
// connection enforces foreign keys.
func dsn(cfg Config) string {
	busy := cfg.BusyTimeoutMS
	if busy <= 0 {
		busy = 5000
	}

	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busy))
	q.Add("_pragma", "journal_mode(WAL)")

	return "file:" + cfg.Path + "?" + q.Encode()
}

// Authors returns the author repository.
func (s *Store) Authors() ports.AuthorRepository {
	return s.authors
}

// Quotes returns the quote repository.
func (s *Store) Quotes() ports.QuoteRepository {
	return s.quotes
}

// Name identifies the store in readiness checks.
func (s *Store) Name() string {
	return "sqlite"
}

// Check pings the database.
func (s *Store) Check(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return domain.NewUnavailableError("sqlite", err.Error())
	}

	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// withTx runs fn in a transaction and commits when it returns nil.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// mapError translates driver errors into domain errors.
func mapError(entity string, err error) error {
	var sqlErr *sqlitedriver.Error
	if !errors.As(err, &sqlErr) {
		return err
	}

	switch sqlErr.Code() & 0xff {
	case sqlite3.SQLITE_CONSTRAINT:
		return domain.NewIntegrityError(entity, err)
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return domain.NewUnavailableError("sqlite", err.Error())
	default:
		return err
	}
}

// rowsAffected returns NotFound when a write matched no row.
func rowsAffected(res sql.Result, entity string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return domain.NewNotFoundError(entity, fmt.Sprint(id))
	}

	return nil
}
