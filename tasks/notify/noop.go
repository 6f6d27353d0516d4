package notify

import (
	"context"
	"time"
)

var _ Gateway = (*NoopGateway)(nil)

// NoopGateway accepts every call and never fires. Installed when
// notification capability is denied or disabled at startup: due dates
// are still stored, but no reminder is ever delivered.
type NoopGateway struct{}

func NewNoopGateway() *NoopGateway {
	return &NoopGateway{}
}

func (g *NoopGateway) Schedule(ctx context.Context, id, title, body string, fireAt time.Time) error {
	return nil
}

func (g *NoopGateway) Cancel(ctx context.Context, id string) error {
	return nil
}
