package tms

import (
	"crypto/rand"
	"io"
	"sync"

	"github.com/oklog/ulid/v2"
)

// ID identifies a fact or rule node for the lifetime of a graph.
// IDs are never reused, so a stale edge can never point at a later node.
type ID = ulid.ULID

// IDSource mints monotonically increasing IDs
type IDSource struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewIDSource creates an ID source backed by crypto/rand
func NewIDSource() *IDSource {
	return NewIDSourceFrom(rand.Reader)
}

// NewIDSourceFrom creates an ID source reading entropy from r.
// Tests pass a deterministic reader.
func NewIDSourceFrom(r io.Reader) *IDSource {
	return &IDSource{
		entropy: ulid.Monotonic(r, 0),
	}
}

// Next returns a fresh ID
func (s *IDSource) Next() ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Now(), s.entropy)
}
