package xtdb

import (
	"sync"
	"time"
)

// KeyAllocator hands out client-side identifiers for inserted records.
//
// The store has no server-generated identifiers: normally a row is
// inserted without its primary key and the key comes back from the
// server, but here the adapter has to produce the key before the insert
// is sent. The number of nanoseconds since the Unix epoch gives a 64-bit
// value that increases over time and is unlikely to collide within one
// process. Callers that expect increasing identifiers (test suites in
// particular) get that property for free.
//
// Two allocations within the same clock tick can still collide; no
// detection or retry is performed.
type KeyAllocator struct {
	mu   sync.Mutex
	now  func() int64
	last int64
}

// NewKeyAllocator creates an allocator backed by the wall clock.
func NewKeyAllocator() *KeyAllocator {
	return &KeyAllocator{now: func() int64 { return time.Now().UnixNano() }}
}

// Next returns the next identifier. Values never decrease within one
// process: a backwards clock step is clamped to the last issued value.
func (a *KeyAllocator) Next() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := a.now()
	if id < a.last {
		id = a.last
	}
	a.last = id
	return id
}
