package driven

import "context"

// KeyValueStore is the persistence substrate for search history.
// String keys map to string values, durable across process restarts.
// Adapters back it with SQLite or memory.
type KeyValueStore interface {
	// Get retrieves the value stored under key.
	// Returns domain.ErrNotFound when the key does not exist.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any prior value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes the key entirely. Removing a missing key is not
	// an error.
	Remove(ctx context.Context, key string) error
}
