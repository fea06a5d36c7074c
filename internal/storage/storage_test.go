package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-india-travel-guide/config"
)

// exerciseStorage runs the contract every backend must satisfy.
func exerciseStorage(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()

	_, found, err := s.Get(ctx, "theme")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "theme", "dark"))
	v, found, err := s.Get(ctx, "theme")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "dark", v)

	require.NoError(t, s.Set(ctx, "theme", "light"))
	v, _, err = s.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light", v)

	require.NoError(t, s.Set(ctx, "wishlist", `[{"id":"red-fort"}]`))
	v, _, err = s.Get(ctx, "wishlist")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"red-fort"}]`, v)
}

func TestMemoryStorage(t *testing.T) {
	s := NewMemoryStorage()
	defer s.Close()
	exerciseStorage(t, s)
}

func TestSQLiteStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "travelguide.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	exerciseStorage(t, s)
	require.NoError(t, s.Close())

	t.Run("values survive reopening", func(t *testing.T) {
		reopened, err := OpenSQLite(path)
		require.NoError(t, err)
		defer reopened.Close()

		v, found, err := reopened.Get(context.Background(), "theme")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "light", v)
	})
}

func TestPostgresStorage(t *testing.T) {
	ctx := context.Background()
	namespace := uuid.MustParse("00000000-0000-0000-0000-000000000001")

	newStorage := func(t *testing.T) (*PostgresStorage, pgxmock.PgxPoolIface) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		return &PostgresStorage{pgpool: mock, namespace: namespace}, mock
	}

	t.Run("Get found", func(t *testing.T) {
		s, mock := newStorage(t)
		defer mock.Close()

		mock.ExpectQuery(`SELECT value\s+FROM kv_store`).
			WithArgs(namespace, "theme").
			WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow("dark"))

		v, found, err := s.Get(ctx, "theme")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "dark", v)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Get missing key", func(t *testing.T) {
		s, mock := newStorage(t)
		defer mock.Close()

		mock.ExpectQuery(`SELECT value\s+FROM kv_store`).
			WithArgs(namespace, "user").
			WillReturnError(pgx.ErrNoRows)

		_, found, err := s.Get(ctx, "user")
		require.NoError(t, err)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Get query error", func(t *testing.T) {
		s, mock := newStorage(t)
		defer mock.Close()

		mock.ExpectQuery(`SELECT value\s+FROM kv_store`).
			WithArgs(namespace, "user").
			WillReturnError(errors.New("connection reset"))

		_, _, err := s.Get(ctx, "user")
		assert.ErrorContains(t, err, "connection reset")
	})

	t.Run("Set upserts", func(t *testing.T) {
		s, mock := newStorage(t)
		defer mock.Close()

		mock.ExpectExec(`INSERT INTO kv_store`).
			WithArgs(namespace, "theme", "dark").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, s.Set(ctx, "theme", "dark"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Set error", func(t *testing.T) {
		s, mock := newStorage(t)
		defer mock.Close()

		mock.ExpectExec(`INSERT INTO kv_store`).
			WithArgs(namespace, "theme", "dark").
			WillReturnError(errors.New("disk full"))

		assert.ErrorContains(t, s.Set(ctx, "theme", "dark"), "disk full")
	})
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("memory", func(t *testing.T) {
		s, err := Open(ctx, config.StorageConfig{Driver: "memory"}, logger)
		require.NoError(t, err)
		assert.IsType(t, &MemoryStorage{}, s)
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := config.StorageConfig{Driver: "sqlite"}
		cfg.SQLite.Path = filepath.Join(t.TempDir(), "state.db")
		s, err := Open(ctx, cfg, logger)
		require.NoError(t, err)
		defer s.Close()
		assert.IsType(t, &SQLiteStorage{}, s)
	})

	t.Run("postgres with bad namespace", func(t *testing.T) {
		_, err := Open(ctx, config.StorageConfig{Driver: "postgres", Namespace: "not-a-uuid"}, logger)
		assert.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := Open(ctx, config.StorageConfig{Driver: "etcd"}, logger)
		assert.ErrorIs(t, err, ErrUnknownDriver)
	})
}
