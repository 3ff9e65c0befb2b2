package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sman1kwanyar/presensi/internal/ctxutil"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLiteBackend keeps the document as one JSON blob in a single-table
// SQLite file. Good enough for a one-session deployment on a school PC.
type SQLiteBackend struct {
	db *sql.DB
}

func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	if path == "" {
		path = "presensi.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS app_state (
		key TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create app_state table: %w", err)
	}
	return &SQLiteBackend{db: db}, nil
}

func (b *SQLiteBackend) Load(ctx context.Context) ([]byte, bool, error) {
	ctx, cancel := ctxutil.WithStoreTimeout(ctx)
	defer cancel()
	var payload []byte
	err := b.db.QueryRowContext(ctx,
		`SELECT payload FROM app_state WHERE key = ?`, StorageKey).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load state: %w", err)
	}
	return payload, true, nil
}

func (b *SQLiteBackend) Save(ctx context.Context, payload []byte) error {
	ctx, cancel := ctxutil.WithStoreTimeout(ctx)
	defer cancel()
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO app_state (key, payload) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload
	`, StorageKey, payload)
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

func (b *SQLiteBackend) Close() error { return b.db.Close() }

// Ping is used by the health endpoint.
func (b *SQLiteBackend) Ping(ctx context.Context) error { return b.db.PingContext(ctx) }
