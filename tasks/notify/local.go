package notify

import (
	"context"
	"sync"
	"time"

	"github.com/mazid79/MemoraTodoApp/logger"
)

var _ Gateway = (*LocalGateway)(nil)

// DeliverFunc receives a notification when its timer elapses.
type DeliverFunc func(id, title, body string)

// LocalGateway arms in-process timers, one per notification id. A due
// date already in the past fires immediately. Timers do not survive a
// restart; the store re-arms them at startup.
type LocalGateway struct {
	mu      sync.Mutex
	timers  map[string]*time.Timer
	deliver DeliverFunc
	logger  *logger.Logger
}

// NewLocalGateway creates a timer-backed gateway. A nil deliver func
// logs fired reminders instead.
func NewLocalGateway(lg *logger.Logger, deliver DeliverFunc) *LocalGateway {
	g := &LocalGateway{
		timers: make(map[string]*time.Timer),
		logger: lg,
	}

	if deliver == nil {
		deliver = func(id, title, body string) {
			lg.Reminder(id, "reminder fired", map[string]any{
				"title": title,
				"body":  body,
			})
		}
	}
	g.deliver = deliver

	return g
}

// Schedule arms a timer for the id, replacing any existing one.
func (g *LocalGateway) Schedule(ctx context.Context, id, title, body string, fireAt time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if existing, ok := g.timers[id]; ok {
		existing.Stop()
	}

	delay := time.Until(fireAt)
	if delay < 0 {
		delay = 0
	}

	g.timers[id] = time.AfterFunc(delay, func() {
		g.mu.Lock()
		delete(g.timers, id)
		g.mu.Unlock()

		g.deliver(id, title, body)
	})

	return nil
}

// Cancel disarms the timer for the id, if any.
func (g *LocalGateway) Cancel(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if timer, ok := g.timers[id]; ok {
		timer.Stop()
		delete(g.timers, id)
	}

	return nil
}

// Pending reports whether a notification is armed for the id.
func (g *LocalGateway) Pending(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.timers[id]
	return ok
}

// Stop disarms every outstanding timer.
func (g *LocalGateway) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for id, timer := range g.timers {
		timer.Stop()
		delete(g.timers, id)
	}
}
