package mesh

import (
	"bytes"
	"context"
)

// MetaKey is the field the substrate keeps for its own bookkeeping.
// It never holds a record.
const MetaKey = "_"

// Change is one event of the per-key change stream. An empty payload is a
// tombstone.
type Change struct {
	Key     string
	Payload []byte
}

// Namespace is the shared multi-writer key-value document every peer
// connects to. Writes are last-write-wins per key; there is no locking.
type Namespace interface {
	// Connect joins the namespace.
	Connect(ctx context.Context) error
	// On streams the current contents followed by every later change.
	// The channel is closed when ctx is cancelled or the namespace closes.
	On(ctx context.Context) (<-chan Change, error)
	// Once reads the namespace a single time, metadata key included.
	Once(ctx context.Context) (map[string][]byte, error)
	// Put writes payload under key. A nil payload writes a tombstone.
	Put(ctx context.Context, key string, payload []byte) error
	Close() error
}

// IsTombstone reports whether payload marks a deleted record.
func IsTombstone(payload []byte) bool {
	p := bytes.TrimSpace(payload)
	return len(p) == 0 || bytes.Equal(p, []byte("null"))
}
