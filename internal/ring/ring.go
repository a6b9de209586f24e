// Package ring provides the fixed-capacity, insertion-ordered buffers that
// sit between the data-plane goroutines (writers) and the render loop
// (reader). Push evicts the oldest entry on overflow; Snapshot returns a
// point-in-time copy so a concurrent render never sees a torn read.
package ring

import "sync"

// Stats is a snapshot of buffer activity counters. Eviction is expected
// behavior, not an error; the Monitor screen surfaces these numbers.
type Stats struct {
	Pushed  uint64
	Evicted uint64
}

// Ring is a bounded buffer of T with oldest-first eviction. The zero value
// is not usable; construct with New.
type Ring[T any] struct {
	mu      sync.Mutex
	items   []T
	head    int // index of the oldest element
	size    int
	pushed  uint64
	evicted uint64
}

// New returns a ring with the given fixed capacity. Capacities below one
// are raised to one.
func New[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{items: make([]T, capacity)}
}

// Push appends v, evicting the oldest entry when the ring is full. It is
// the only mutation the writer side performs.
func (r *Ring[T]) Push(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.size == len(r.items) {
		r.items[r.head] = v
		r.head = (r.head + 1) % len(r.items)
		r.evicted++
	} else {
		r.items[(r.head+r.size)%len(r.items)] = v
		r.size++
	}
	r.pushed++
}

// Snapshot returns the current contents oldest-first as a fresh slice.
func (r *Ring[T]) Snapshot() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.items[(r.head+i)%len(r.items)]
	}
	return out
}

// Len returns the number of buffered entries.
func (r *Ring[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

// Cap returns the fixed capacity.
func (r *Ring[T]) Cap() int {
	return len(r.items)
}

// Clear drops all buffered entries. Counters are kept.
func (r *Ring[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T
	for i := range r.items {
		r.items[i] = zero
	}
	r.head = 0
	r.size = 0
}

// GetStats returns a copy of the activity counters.
func (r *Ring[T]) GetStats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Stats{Pushed: r.pushed, Evicted: r.evicted}
}
