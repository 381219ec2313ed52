// Package snapshot persists the engine's serialized state so a restarted
// instance can rebuild itself. Indexes are never persisted; the engine
// reconstructs them from the restored state.
package snapshot

import "context"

// Store saves and loads one opaque snapshot blob. Load returns (nil, nil)
// when no snapshot has been written yet.
type Store interface {
	Save(ctx context.Context, data []byte) error
	Load(ctx context.Context) ([]byte, error)
	Ping(ctx context.Context) error
}
