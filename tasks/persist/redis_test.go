//go:build integration

package persist

import (
	"context"
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/mazid79/MemoraTodoApp/tasks"
)

func TestRedisGateway_NewRedisGateway(t *testing.T) {
	gw, cleanup := setupRedisTestcontainer(t)
	defer cleanup()

	assert.Assert(t, gw != nil)
	assert.Assert(t, gw.client != nil)
	assert.Assert(t, len(gw.key) > 0)
}

func TestRedisGateway_LoadAbsent(t *testing.T) {
	gw, cleanup := setupRedisTestcontainer(t)
	defer cleanup()

	_, ok, err := gw.Load(context.Background())
	assert.NilError(t, err)
	assert.Assert(t, !ok)
}

func TestRedisGateway_SaveAndLoad(t *testing.T) {
	gw, cleanup := setupRedisTestcontainer(t)
	defer cleanup()

	ctx := context.Background()
	due := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	blob, err := EncodeTasks([]tasks.Task{
		{ID: "id-1", Title: "Call mom", DueDate: &due},
		{ID: "id-2", Title: "Buy milk", Completed: true},
	})
	assert.NilError(t, err)

	assert.NilError(t, gw.Save(ctx, blob))

	loaded, ok, err := gw.Load(ctx)
	assert.NilError(t, err)
	assert.Assert(t, ok)
	assert.Equal(t, blob, loaded)

	list, err := DecodeTasks(loaded)
	assert.NilError(t, err)
	assert.Equal(t, 2, len(list))
	assert.Equal(t, "Call mom", list[0].Title)
}

func TestRedisGateway_SaveOverwrites(t *testing.T) {
	gw, cleanup := setupRedisTestcontainer(t)
	defer cleanup()

	ctx := context.Background()
	assert.NilError(t, gw.Save(ctx, `[{"id":"a","title":"one","completed":false}]`))
	assert.NilError(t, gw.Save(ctx, `[]`))

	loaded, ok, err := gw.Load(ctx)
	assert.NilError(t, err)
	assert.Assert(t, ok)
	assert.Equal(t, "[]", loaded)
}

func TestRedisGateway_ConnectionErrors(t *testing.T) {
	_, err := NewRedisGateway("invalid://url", "tasks")
	assert.ErrorContains(t, err, "invalid Redis URL")

	_, err = NewRedisGateway("redis://localhost:1/0", "tasks")
	assert.ErrorContains(t, err, "failed to connect to Redis")
}
