package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
	"github.com/pressly/goose/v3"
	"github.com/sman1kwanyar/presensi/internal/ctxutil"
	"github.com/sman1kwanyar/presensi/internal/store/migrations"
)

// PostgresBackend keeps the document as one JSONB row. Meant for
// deployments where the school runs the service next to an existing
// postgres instance.
type PostgresBackend struct {
	db *sql.DB
}

func NewPostgresBackend(dsn string) (*PostgresBackend, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresBackend{db: db}, nil
}

// NewPostgresBackendFromDB wraps an already-open connection; the test
// harness uses this with its own driver.
func NewPostgresBackendFromDB(db *sql.DB) (*PostgresBackend, error) {
	if err := migrate(db); err != nil {
		return nil, err
	}
	return &PostgresBackend{db: db}, nil
}

func migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migrate app_state: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Load(ctx context.Context) ([]byte, bool, error) {
	ctx, cancel := ctxutil.WithStoreTimeout(ctx)
	defer cancel()
	var payload []byte
	err := b.db.QueryRowContext(ctx,
		`SELECT payload FROM app_state WHERE key = $1`, StorageKey).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load state: %w", err)
	}
	return payload, true, nil
}

func (b *PostgresBackend) Save(ctx context.Context, payload []byte) error {
	ctx, cancel := ctxutil.WithStoreTimeout(ctx)
	defer cancel()
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO app_state (key, payload, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET payload = excluded.payload, updated_at = now()
	`, StorageKey, payload)
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Close() error { return b.db.Close() }

// Ping is used by the health endpoint.
func (b *PostgresBackend) Ping(ctx context.Context) error { return b.db.PingContext(ctx) }
