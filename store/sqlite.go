package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/ayoisaiah/readtime/internal/osutil"
)

// SQLiteKV is a KV backed by a single SQLite table.
type SQLiteKV struct {
	db *sql.DB
}

// OpenSQLite opens or creates the SQLite database at dbPath.
func OpenSQLite(ctx context.Context, dbPath string) (*SQLiteKV, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), osutil.DirPermission); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// a single connection serialises writers the same way the bolt file lock does
	db.SetMaxOpenConns(1)

	kv := &SQLiteKV{db: db}
	if err := kv.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return kv, nil
}

func (s *SQLiteKV) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS kv (
  key TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create kv table: %w", err)
	}

	return nil
}

func (s *SQLiteKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte

	err := s.db.QueryRowContext(
		ctx,
		`SELECT value FROM kv WHERE key = ?`,
		key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("select %s: %w", key, err)
	}

	return value, nil
}

func (s *SQLiteKV) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key,
		value,
	)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}

	return nil
}

func (s *SQLiteKV) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}

	return nil
}

func (s *SQLiteKV) Close() error {
	return s.db.Close()
}
