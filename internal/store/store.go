// Package store persists the application state as JSON blobs in a SQL
// key-value table.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when a key or record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrLocked is returned when another process holds the database.
	ErrLocked = errors.New("database is in use by another portage process")
)

// Options selects and configures the database.
type Options struct {
	// Driver is one of DriverSQLite (default), DriverPostgres, DriverMySQL.
	Driver string
	// DSN is the SQLite file path or URI, or the server connection string.
	DSN    string
	Logger *zap.Logger
}

// Store owns the database connection and hands out repositories.
type Store struct {
	db      *sql.DB
	dialect sqlDialect
	lock    *dbLock
	logger  *zap.Logger
	now     func() time.Time
}

// Open connects to the database, takes the single-writer lock for file-backed
// SQLite and creates the key-value table if needed.
func Open(opts Options) (*Store, error) {
	d, err := dialectFor(opts.Driver)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var lock *dbLock
	if path, ok := sqliteFilePath(d, opts.DSN); ok {
		lock, err = acquireLock(path + ".lock")
		if err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(d.DriverName(), opts.DSN)
	if err != nil {
		lock.release()
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := d.Configure(db); err != nil {
		db.Close()
		lock.release()
		return nil, fmt.Errorf("configure %s: %w", d.DriverName(), err)
	}

	s := newStore(db, d, logger)
	s.lock = lock
	if err := s.migrate(context.Background()); err != nil {
		s.Close()
		return nil, err
	}

	logger.Debug("store opened", zap.String("driver", d.DriverName()))
	return s, nil
}

func newStore(db *sql.DB, d sqlDialect, logger *zap.Logger) *Store {
	return &Store{db: db, dialect: d, logger: logger, now: time.Now}
}

func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTableQuery(s.dialect)); err != nil {
		return fmt.Errorf("create %s: %w", tableEntries, err)
	}
	return nil
}

// Close closes the database and releases the lock.
func (s *Store) Close() error {
	err := s.db.Close()
	s.lock.release()
	return err
}

// Blobs returns the raw key-value store.
func (s *Store) Blobs() BlobStore {
	return &sqlBlobStore{db: s.db, dialect: s.dialect.Name(), now: s.now, logger: s.logger}
}

// Children returns the child repository.
func (s *Store) Children() ChildRepo {
	return &childRepo{blobs: s.Blobs()}
}

// Therapist returns the therapist name repository.
func (s *Store) Therapist() TherapistRepo {
	return &therapistRepo{blobs: s.Blobs()}
}

// sqliteFilePath returns the database file behind a SQLite DSN, or false for
// in-memory databases and other drivers.
func sqliteFilePath(d sqlDialect, dsn string) (string, bool) {
	if d.DriverName() != DriverSQLite {
		return "", false
	}
	p := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	if p == "" || p == ":memory:" || strings.HasPrefix(p, ":memory:") {
		return "", false
	}
	return p, true
}

// DefaultDBPath resolves the database file path in priority order:
// 1. PORTAGE_DB environment variable
// 2. $XDG_DATA_HOME/portage/portage.db
// 3. ~/.local/share/portage/portage.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("PORTAGE_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "portage", "portage.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
