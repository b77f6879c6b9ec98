package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Entry is one cached upstream response body. Freshness is evaluated by the
// caller against the TTL it is working with; the store itself never expires
// entries.
type Entry struct {
	Payload  json.RawMessage
	StoredAt time.Time
}

// Fresh reports whether the entry is within ttl of its storage time.
func (e Entry) Fresh(ttl time.Duration) bool {
	return time.Since(e.StoredAt) < ttl
}

type Store interface {
	// Get is a pure lookup; it does not mutate the store and does not
	// evaluate freshness.
	Get(ctx context.Context, key string) (Entry, bool)
	// Set inserts or overwrites the entry for key with the current time.
	Set(ctx context.Context, key string, payload json.RawMessage)
	// Clear empties the store and returns the resulting size (always 0).
	Clear(ctx context.Context) int
	// Size returns the current entry count.
	Size(ctx context.Context) int
}
