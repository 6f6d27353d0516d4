package persist_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gotest.tools/v3/assert"

	"github.com/mazid79/MemoraTodoApp/tasks/persist"
)

func TestMemoryGateway_LoadAbsent(t *testing.T) {
	t.Parallel()
	g := persist.NewMemoryGateway()

	blob, ok, err := g.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, false, ok)
	assert.Equal(t, "", blob)
}

func TestMemoryGateway_SaveOverwrites(t *testing.T) {
	t.Parallel()
	g := persist.NewMemoryGateway()
	ctx := context.Background()

	require.NoError(t, g.Save(ctx, `["first"]`))
	require.NoError(t, g.Save(ctx, `["second"]`))

	blob, ok, err := g.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, true, ok)
	assert.Equal(t, `["second"]`, blob)
	assert.Equal(t, 2, g.Saves())
}

func TestMemoryGateway_EmptyBlobIsPresent(t *testing.T) {
	t.Parallel()
	g := persist.NewMemoryGateway()
	ctx := context.Background()

	require.NoError(t, g.Save(ctx, ""))

	_, ok, err := g.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, true, ok)
}
