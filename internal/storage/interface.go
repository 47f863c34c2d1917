package storage

import "context"

// Fixed keys for the shared key-value store. Each record type lives under
// one key; every write is a full overwrite of that key.
const (
	KeyPlayer      = "player"      // JSON object
	KeyConnections = "connections" // JSON array
	KeyTheme       = "theme"       // plain enum string
	KeyRounds      = "rounds"      // JSON array
)

// Store defines the interface for the shared key-value store. Values are
// structured text; reads of absent keys return model.ErrKeyNotFound.
// Concurrent writers to the same key race last-write-wins; there is no
// cross-key transaction.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
