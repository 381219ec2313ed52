package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresStore keeps the snapshot in a single-row table, upserted on every
// save.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// OpenPostgres connects and ensures the snapshot table exists.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	store := NewPostgresStore(db)
	if err := store.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS project_snapshots (
	id         int PRIMARY KEY,
	data       bytea NOT NULL,
	updated_at timestamptz NOT NULL DEFAULT now()
);
`
	if _, err := s.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("ensure snapshot schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, data []byte) error {
	const q = `
INSERT INTO project_snapshots (id, data, updated_at)
VALUES (1, $1, now())
ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now();
`
	if _, err := s.db.ExecContext(ctx, q, data); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) ([]byte, error) {
	const q = `SELECT data FROM project_snapshots WHERE id = 1;`

	var data []byte
	err := s.db.QueryRowContext(ctx, q).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return data, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
