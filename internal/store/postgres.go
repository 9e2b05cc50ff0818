package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// PostgresStore keeps each named document as a JSONB row. Update runs the
// read-modify-write inside a transaction holding a per-key advisory lock
// plus a row lock, which makes it the mutual-exclusion point for
// multi-client deployments: two clients booking the same table serialize
// here.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates the store and its schema if needed.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			key TEXT PRIMARY KEY,
			doc JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return nil, fmt.Errorf("create documents table: %w", err)
	}
	log.Info().Msg("Postgres document store ready")
	return &PostgresStore{pool: pool}, nil
}

func (p *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	const query = `SELECT doc FROM documents WHERE key = $1`

	var doc []byte
	err := p.pool.QueryRow(ctx, query, key).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %q: %w", key, err)
	}
	return doc, nil
}

func (p *PostgresStore) Put(ctx context.Context, key string, doc []byte) error {
	const query = `
		INSERT INTO documents (key, doc, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()
	`

	if _, err := p.pool.Exec(ctx, query, key, doc); err != nil {
		return fmt.Errorf("failed to put document %q: %w", key, err)
	}
	return nil
}

// Update reads the row under lock, applies fn, and writes the result back
// in the same transaction. A transaction-scoped advisory lock on the key
// serializes updaters even before the row exists; FOR UPDATE alone locks
// nothing for a key that has never been written.
func (p *PostgresStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update of %q: %w", key, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
		return fmt.Errorf("failed to lock document %q: %w", key, err)
	}

	var cur []byte
	err = tx.QueryRow(ctx, `SELECT doc FROM documents WHERE key = $1 FOR UPDATE`, key).Scan(&cur)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to read document %q: %w", key, err)
	}

	next, err := fn(cur)
	if err != nil {
		return err
	}

	const upsert = `
		INSERT INTO documents (key, doc, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()
	`
	if _, err := tx.Exec(ctx, upsert, key, next); err != nil {
		return fmt.Errorf("failed to write document %q: %w", key, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update of %q: %w", key, err)
	}
	return nil
}

func (p *PostgresStore) Delete(ctx context.Context, key string) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM documents WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete document %q: %w", key, err)
	}
	return nil
}

// Close is a no-op; the pool is owned and closed by the caller.
func (p *PostgresStore) Close() error { return nil }
