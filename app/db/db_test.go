package database

import (
	"io"
	"log/slog"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-india-travel-guide/config"
)

func TestNewDatabaseConfig(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("builds postgresql url", func(t *testing.T) {
		dbCfg, err := NewDatabaseConfig(config.PostgresConfig{
			Host: "db", Port: "5432", Username: "guide", Password: "p@ss", DB: "travelguide",
		}, logger)
		require.NoError(t, err)

		u, err := url.Parse(dbCfg.ConnectionURL)
		require.NoError(t, err)
		assert.Equal(t, "postgresql", u.Scheme)
		assert.Equal(t, "db:5432", u.Host)
		assert.Equal(t, "/travelguide", u.Path)
		pw, _ := u.User.Password()
		assert.Equal(t, "p@ss", pw)
		assert.Equal(t, "disable", u.Query().Get("sslmode"))
	})

	t.Run("missing host", func(t *testing.T) {
		_, err := NewDatabaseConfig(config.PostgresConfig{}, logger)
		assert.Error(t, err)
	})
}

func TestRunMigrations_RejectsNonPostgresURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	err := RunMigrations("mysql://localhost/db", logger)
	assert.Error(t, err)
}
