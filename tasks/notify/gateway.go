package notify

import (
	"context"
	"time"
)

// Gateway is the platform notification contract. Implementations keep
// at most one pending notification per id: scheduling under an existing
// id supersedes the prior schedule, and cancelling an unknown id is a
// no-op, not an error.
type Gateway interface {
	Schedule(ctx context.Context, id, title, body string, fireAt time.Time) error
	Cancel(ctx context.Context, id string) error
}
