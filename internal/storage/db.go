// ABOUTME: SQLite database connection and lifecycle management.
// ABOUTME: Uses modernc.org/sqlite (pure Go, no CGO required).
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/harperreed/fitlog/internal/models"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// DB is the storage service. Construct it with New, then call Init; every
// operation fails with ErrStorageUnavailable until Init succeeds.
type DB struct {
	mu      sync.RWMutex
	db      *sql.DB
	dbPath  string
	now     func() time.Time
	initErr error
}

// Option configures a DB.
type Option func(*DB)

// WithClock replaces time.Now, which decides "today" for statistics,
// progress windows and created_at stamps.
func WithClock(now func() time.Time) Option {
	return func(d *DB) {
		d.now = now
	}
}

// New returns an uninitialized DB for the file at dbPath.
func New(dbPath string, opts ...Option) *DB {
	d := &DB{dbPath: dbPath, now: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Open creates a DB and initializes it.
func Open(ctx context.Context, dbPath string, opts ...Option) (*DB, error) {
	d := New(dbPath, opts...)
	if err := d.Init(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// DataDir returns the default data directory under XDG_DATA_HOME.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "fitlog")
}

// Init opens the database file, applies pragmas, brings the schema up to
// date and seeds the default exercises. It is safe to call again after a
// failure; once it succeeds further calls are no-ops.
func (d *DB) Init(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db != nil {
		return nil
	}

	conn, err := d.open(ctx)
	if err != nil {
		d.initErr = err
		logrus.WithError(err).WithField("path", d.dbPath).Error("storage init failed")
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	d.db = conn
	d.initErr = nil
	logrus.WithField("path", d.dbPath).Info("storage ready")
	return nil
}

func (d *DB) open(ctx context.Context) (*sql.DB, error) {
	// Ensure parent directory exists
	dir := filepath.Dir(d.dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	conn, err := sql.Open("sqlite", d.dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One connection: pragmas are per connection and writes stay serialized.
	conn.SetMaxOpenConns(1)

	if err := configurePragmas(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("configure pragmas: %w", err)
	}

	if err := os.Chmod(d.dbPath, 0600); err != nil && !os.IsNotExist(err) {
		_ = conn.Close()
		return nil, fmt.Errorf("set database permissions: %w", err)
	}

	if err := d.initSchema(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	if err := d.seedDefaults(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("seed default exercises: %w", err)
	}

	return conn, nil
}

// Ready reports whether Init has succeeded and the DB is not closed.
func (d *DB) Ready() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.db != nil
}

// InitErr returns the cause of the last failed Init, if any.
func (d *DB) InitErr() error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.initErr
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.dbPath
}

// Close closes the database connection. The DB is unavailable afterwards
// until Init is called again.
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	return err
}

func (d *DB) conn() (*sql.DB, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.db == nil {
		if d.initErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, d.initErr)
		}
		return nil, ErrStorageUnavailable
	}
	return d.db, nil
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// withTx runs fn in a transaction and commits when it returns nil.
// fn must use tx only: the pool holds a single connection.
func (d *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	conn, err := d.conn()
	if err != nil {
		return err
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// today returns the local calendar date of the configured clock.
func (d *DB) today() models.Date {
	return models.DateOf(d.now())
}

// stamp returns the created_at value for a new row.
func (d *DB) stamp() time.Time {
	return d.now().UTC().Truncate(time.Second)
}

// configurePragmas sets up SQLite for optimal performance.
func configurePragmas(ctx context.Context, conn *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := conn.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}
