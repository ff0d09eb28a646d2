package kvstore

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/KirkDiggler/pixel-xp/internal/errors"
)

const schema = `CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// OpenSQLite opens (and creates if missing) the SQLite database at path and
// ensures the kv table exists
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		return nil, errors.InvalidArgument("sqlite path is required")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "failed to create %s", dir)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite")
	}

	// Single writer; avoids SQLITE_BUSY between pooled connections
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to create kv table")
	}

	return db, nil
}

// SQLiteConfig holds the configuration for the SQLite store
type SQLiteConfig struct {
	DB *sql.DB
}

// Validate ensures all required dependencies are provided
func (c *SQLiteConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.DB == nil {
		return errors.InvalidArgument("db cannot be nil")
	}
	return nil
}

type sqliteStore struct {
	db *sql.DB
}

// NewSQLite creates a Store backed by a SQLite kv table
func NewSQLite(cfg *SQLiteConfig) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &sqliteStore{db: cfg.DB}, nil
}

// Get retrieves a value by key
func (s *sqliteStore) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, input.Key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("key not found").WithMeta("key", input.Key)
		}
		return nil, errors.Wrapf(err, "failed to read %s", input.Key)
	}

	return &GetOutput{Value: value}, nil
}

// Set upserts a value
func (s *sqliteStore) Set(ctx context.Context, input SetInput) (*SetOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		input.Key, input.Value,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to write %s", input.Key)
	}

	return &SetOutput{}, nil
}
