package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-lab/internal/platform/config"
)

func TestOpen_SQLite(t *testing.T) {
	store, err := Open(context.Background(), config.DatabaseConfig{
		Driver: config.DriverSQLite,
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "nested", "quotes.db")},
	})
	require.NoError(t, err)

	t.Cleanup(func() { _ = store.Close() })

	assert.Equal(t, "sqlite", store.Name())
	assert.NoError(t, store.Check(context.Background()))

	authors, err := store.Authors().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, authors)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{Driver: "postgres"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown database driver "postgres"`)
}
