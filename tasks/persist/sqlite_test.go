package persist_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazid79/MemoraTodoApp/tasks/persist"
)

func newTestSQLiteGateway(t *testing.T, key string) *persist.SQLiteGateway {
	t.Helper()

	path := filepath.Join(t.TempDir(), "memora_test.db")
	g, err := persist.NewSQLiteGateway(path, key)
	require.NoError(t, err)
	t.Cleanup(func() { g.Close() })

	return g
}

func TestSQLiteGateway_LoadAbsent(t *testing.T) {
	g := newTestSQLiteGateway(t, "tasks")

	blob, ok, err := g.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, blob)
}

func TestSQLiteGateway_SaveLoad(t *testing.T) {
	g := newTestSQLiteGateway(t, "tasks")
	ctx := context.Background()

	require.NoError(t, g.Save(ctx, `[{"id":"a","title":"Buy milk","completed":false}]`))

	blob, ok, err := g.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"a","title":"Buy milk","completed":false}]`, blob)
}

func TestSQLiteGateway_SaveOverwrites(t *testing.T) {
	g := newTestSQLiteGateway(t, "tasks")
	ctx := context.Background()

	require.NoError(t, g.Save(ctx, `["first"]`))
	require.NoError(t, g.Save(ctx, `["second"]`))

	blob, ok, err := g.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["second"]`, blob)
}

func TestSQLiteGateway_KeysAreIndependent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memora_test.db")

	g1, err := persist.NewSQLiteGateway(path, "tasks")
	require.NoError(t, err)
	defer g1.Close()

	g2, err := persist.NewSQLiteGateway(path, "other")
	require.NoError(t, err)
	defer g2.Close()

	ctx := context.Background()
	require.NoError(t, g1.Save(ctx, `["tasks"]`))

	_, ok, err := g2.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
