package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ Storage = (*PostgresStorage)(nil)

// pgxPool is the subset of *pgxpool.Pool the backend needs.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStorage stores values in the kv_store table, one row per
// (namespace, key). The namespace identifies the client that owns the state.
type PostgresStorage struct {
	pgpool    pgxPool
	namespace uuid.UUID
}

func NewPostgresStorage(pool *pgxpool.Pool, namespace uuid.UUID) *PostgresStorage {
	return &PostgresStorage{pgpool: pool, namespace: namespace}
}

func (s *PostgresStorage) Get(ctx context.Context, key string) (string, bool, error) {
	query := `
        SELECT value
        FROM kv_store
        WHERE namespace = $1 AND key = $2
    `
	var value string
	if err := s.pgpool.QueryRow(ctx, query, s.namespace, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, true, nil
}

func (s *PostgresStorage) Set(ctx context.Context, key, value string) error {
	query := `
        INSERT INTO kv_store (namespace, key, value)
        VALUES ($1, $2, $3)
        ON CONFLICT (namespace, key) DO UPDATE
        SET value = EXCLUDED.value, updated_at = NOW()
    `
	if _, err := s.pgpool.Exec(ctx, query, s.namespace, key, value); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

func (s *PostgresStorage) Close() error {
	s.pgpool.Close()
	return nil
}
