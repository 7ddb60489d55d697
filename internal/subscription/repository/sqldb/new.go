package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"repo-relay/internal/subscription/repository"
	"repo-relay/pkg/log"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Options selects and locates the backing database.
type Options struct {
	Driver string // sqlite (default) or mysql
	Path   string // sqlite file
	DSN    string // mysql
}

type implRepository struct {
	db      *sql.DB
	dialect string
	l       log.Logger
	locks   *keyLocks
	now     func() time.Time
}

// New creates a SQL-backed Repository over an already opened handle.
func New(db *sql.DB, dialect string, l log.Logger) *implRepository {
	if db == nil {
		panic("subscription/repository/sqldb: db is required")
	}
	return &implRepository{
		db:      db,
		dialect: dialect,
		l:       l,
		locks:   newKeyLocks(),
		now:     time.Now,
	}
}

// Open opens the configured database, applies pending migrations and
// returns the ready repository.
func Open(ctx context.Context, opt Options, l log.Logger) (repository.Repository, error) {
	var (
		db      *sql.DB
		dialect string
		err     error
	)
	switch strings.ToLower(opt.Driver) {
	case "", DriverSQLite, "sqlite3":
		db, err = openSQLite(opt.Path)
		dialect = DriverSQLite
	case DriverMySQL:
		db, err = openMySQL(opt.DSN)
		dialect = DriverMySQL
	default:
		return nil, fmt.Errorf("unsupported database driver %q (supported: sqlite, mysql)", opt.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging %s: %w", dialect, err)
	}

	r := New(db, dialect, l)
	if err := r.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func openSQLite(path string) (*sql.DB, error) {
	if path == "" {
		path = "repo-relay.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	// synchronous=FULL: a mutation is on disk once the call returns.
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_synchronous=FULL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)
	return db, nil
}

func openMySQL(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("mysql driver requires a dsn")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening mysql database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

// Close releases the underlying database handle.
func (r *implRepository) Close() error {
	return r.db.Close()
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("subscription/repository/sqldb.%s", method)
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
