package iodb_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/razinkele/traitstore/internal/iodb"
	"github.com/razinkele/traitstore/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The store is an embedded SQLite file, so these tests run against a
// throwaway database under t.TempDir() and need no external services.

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabasePath(filepath.Join(t.TempDir(), "traits.db")),
	})
	return cfg
}

func TestSQLiteOperator_Connect(t *testing.T) {
	op := iodb.NewSQLiteOperator()
	ctx := context.Background()

	err := op.Connect(ctx, testConfig(t))
	require.NoError(t, err)
	defer op.Close()

	exists, err := op.TableExists(ctx, "nonexistent_table")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestSQLiteOperator_Connect_CreatesDirectory(t *testing.T) {
	op := iodb.NewSQLiteOperator()
	ctx := context.Background()

	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabasePath(
			filepath.Join(t.TempDir(), "nested", "dir", "traits.db"),
		),
	})

	err := op.Connect(ctx, cfg)
	require.NoError(t, err, "missing parent directories are created")
	op.Close()
}

func TestSQLiteOperator_NotConnected(t *testing.T) {
	op := iodb.NewSQLiteOperator()
	ctx := context.Background()

	_, err := op.TableExists(ctx, "species")
	assert.Error(t, err)

	_, err = op.HasTables(ctx)
	assert.Error(t, err)

	err = op.DropAllTables(ctx)
	assert.Error(t, err)

	assert.NoError(t, op.Close(), "closing unconnected operator is a no-op")
}

func TestSQLiteOperator_Tables(t *testing.T) {
	op := iodb.NewSQLiteOperator()
	ctx := context.Background()

	require.NoError(t, op.Connect(ctx, testConfig(t)))
	defer op.Close()

	has, err := op.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, has, "fresh database has no user tables")

	_, err = op.DB().ExecContext(ctx,
		"CREATE TABLE species (id INTEGER PRIMARY KEY, aphia_id INTEGER)")
	require.NoError(t, err)

	has, err = op.HasTables(ctx)
	require.NoError(t, err)
	assert.True(t, has)

	exists, err := op.TableExists(ctx, "species")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, op.DropAllTables(ctx))

	has, err = op.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, has, "drop removes every user table")
}
