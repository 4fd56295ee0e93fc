package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteKV implements KV on a local sqlite file.
type SQLiteKV struct {
	sql *sql.DB
}

// OpenSQLite opens (and if needed creates) the store at path.
func OpenSQLite(path string) (*SQLiteKV, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open store at %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to open store at %s: %w", path, err)
	}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS kv_entries (
  key        TEXT PRIMARY KEY,
  value      BLOB NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
	`); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLiteKV{sql: db}, nil
}

// Get returns the value for key, or ok=false when the key is absent.
func (s *SQLiteKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.sql.QueryRowContext(ctx, "SELECT value FROM kv_entries WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return value, true, nil
}

// Put writes or replaces the value for key. Writes are idempotent.
func (s *SQLiteKV) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.sql.ExecContext(ctx, `
INSERT INTO kv_entries(key, value, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		if strings.Contains(err.Error(), "disk is full") || strings.Contains(err.Error(), "disk full") {
			return fmt.Errorf("failed to write key %s: %w", key, ErrQuotaExceeded)
		}
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// Delete removes key; deleting an absent key is a no-op.
func (s *SQLiteKV) Delete(ctx context.Context, key string) error {
	if _, err := s.sql.ExecContext(ctx, "DELETE FROM kv_entries WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteKV) Close() error {
	if s == nil || s.sql == nil {
		return nil
	}
	return s.sql.Close()
}
