package notify_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazid79/MemoraTodoApp/logger"
	"github.com/mazid79/MemoraTodoApp/tasks/notify"
)

type delivery struct {
	id    string
	title string
	body  string
}

func newTestLocalGateway(t *testing.T) (*notify.LocalGateway, chan delivery) {
	t.Helper()

	fired := make(chan delivery, 10)
	lg := logger.New("ERROR", io.Discard)
	g := notify.NewLocalGateway(lg, func(id, title, body string) {
		fired <- delivery{id: id, title: title, body: body}
	})
	t.Cleanup(g.Stop)

	return g, fired
}

func waitForDelivery(t *testing.T, fired chan delivery) delivery {
	t.Helper()

	select {
	case d := <-fired:
		return d
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reminder to fire")
		return delivery{}
	}
}

func TestLocalGateway_PastDueDateFiresImmediately(t *testing.T) {
	g, fired := newTestLocalGateway(t)

	err := g.Schedule(context.Background(), "task-1", "Reminder", "Buy milk", time.Now().Add(-time.Hour))
	require.NoError(t, err)

	d := waitForDelivery(t, fired)
	assert.Equal(t, "task-1", d.id)
	assert.Equal(t, "Reminder", d.title)
	assert.Equal(t, "Buy milk", d.body)
	assert.False(t, g.Pending("task-1"))
}

func TestLocalGateway_CancelPreventsFiring(t *testing.T) {
	g, fired := newTestLocalGateway(t)
	ctx := context.Background()

	require.NoError(t, g.Schedule(ctx, "task-1", "Reminder", "Buy milk", time.Now().Add(time.Hour)))
	require.True(t, g.Pending("task-1"))

	require.NoError(t, g.Cancel(ctx, "task-1"))
	assert.False(t, g.Pending("task-1"))

	select {
	case <-fired:
		t.Fatal("cancelled reminder fired")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestLocalGateway_CancelUnknownIDIsNoop(t *testing.T) {
	g, _ := newTestLocalGateway(t)

	assert.NoError(t, g.Cancel(context.Background(), "does-not-exist"))
}

func TestLocalGateway_RescheduleSupersedes(t *testing.T) {
	g, fired := newTestLocalGateway(t)
	ctx := context.Background()

	// Far-future schedule replaced by an immediate one: only the second fires
	require.NoError(t, g.Schedule(ctx, "task-1", "Reminder", "old body", time.Now().Add(time.Hour)))
	require.NoError(t, g.Schedule(ctx, "task-1", "Reminder", "new body", time.Now()))

	d := waitForDelivery(t, fired)
	assert.Equal(t, "new body", d.body)

	select {
	case <-fired:
		t.Fatal("superseded reminder fired as well")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestLocalGateway_StopDisarmsAll(t *testing.T) {
	g, fired := newTestLocalGateway(t)
	ctx := context.Background()

	require.NoError(t, g.Schedule(ctx, "a", "Reminder", "one", time.Now().Add(time.Hour)))
	require.NoError(t, g.Schedule(ctx, "b", "Reminder", "two", time.Now().Add(time.Hour)))

	g.Stop()

	assert.False(t, g.Pending("a"))
	assert.False(t, g.Pending("b"))

	select {
	case <-fired:
		t.Fatal("stopped reminder fired")
	case <-time.After(50 * time.Millisecond):
	}
}
