package persist

import (
	"context"
	"sync"
)

// Compile-time check to ensure MemoryGateway implements Gateway
var _ Gateway = (*MemoryGateway)(nil)

// MemoryGateway keeps the blob in process memory. Used as the default
// development backend and throughout the tests. Nothing survives a
// restart.
type MemoryGateway struct {
	mu    sync.RWMutex
	blob  string
	ok    bool
	saves int
}

// NewMemoryGateway creates an empty in-memory gateway.
func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{}
}

func (g *MemoryGateway) Load(ctx context.Context) (string, bool, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.blob, g.ok, nil
}

func (g *MemoryGateway) Save(ctx context.Context, blob string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.blob = blob
	g.ok = true
	g.saves++
	return nil
}

// Saves returns how many writes the gateway has received.
func (g *MemoryGateway) Saves() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.saves
}
