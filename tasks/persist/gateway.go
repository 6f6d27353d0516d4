package persist

import "context"

// Gateway is the key-value persistence contract for the task list.
// The whole list lives under a single fixed key as one JSON blob;
// every Save unconditionally overwrites the previous value.
type Gateway interface {
	// Load returns the stored blob. The second return value is false
	// when nothing has been stored yet, which is not an error.
	Load(ctx context.Context) (string, bool, error)

	// Save overwrites the stored blob.
	Save(ctx context.Context, blob string) error
}
