// Package history holds the bounded in-memory snapshot history and its
// on-disk persistence.
package history

import (
	"sync"

	"sysdoctor/internal/snapshot"
)

// Store is a fixed-capacity ring buffer of snapshots with strict FIFO
// eviction. The collector is the single writer; analytics and the dispatch
// layer read concurrently. All reads return copies, so a reader never
// observes an in-progress append.
type Store struct {
	entries  []snapshot.Snapshot
	capacity int
	head     int // index of oldest element
	count    int // current number of elements
	mutex    sync.RWMutex
}

// NewStore creates a store holding at most capacity snapshots
func NewStore(capacity int) *Store {
	if capacity < 1 {
		capacity = 1
	}
	return &Store{
		entries:  make([]snapshot.Snapshot, capacity),
		capacity: capacity,
	}
}

// Capacity returns the fixed maximum number of snapshots
func (s *Store) Capacity() int {
	return s.capacity
}

// Len returns the current occupancy
func (s *Store) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.count
}

// Append adds a snapshot, evicting the oldest entry when full. O(1).
func (s *Store) Append(snap snapshot.Snapshot) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	insertIdx := (s.head + s.count) % s.capacity
	s.entries[insertIdx] = snap

	if s.count < s.capacity {
		s.count++
	} else {
		s.head = (s.head + 1) % s.capacity
	}
}

// All returns a copy of the stored snapshots in insertion order
func (s *Store) All() []snapshot.Snapshot {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.ordered(s.count)
}

// Tail returns a copy of up to the last n snapshots in insertion order.
// n <= 0 returns an empty slice.
func (s *Store) Tail(n int) []snapshot.Snapshot {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if n < 0 {
		n = 0
	}
	if n > s.count {
		n = s.count
	}
	return s.ordered(n)
}

// ordered copies the newest n entries oldest-to-newest. Caller holds the lock.
func (s *Store) ordered(n int) []snapshot.Snapshot {
	result := make([]snapshot.Snapshot, n)
	start := s.count - n
	for i := 0; i < n; i++ {
		idx := (s.head + start + i) % s.capacity
		result[i] = s.entries[idx]
	}
	return result
}

// ReplaceAll installs the given snapshots as the full history, keeping only
// the most recent capacity entries. Used once, when loading persisted
// history at startup.
func (s *Store) ReplaceAll(snaps []snapshot.Snapshot) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(snaps) > s.capacity {
		snaps = snaps[len(snaps)-s.capacity:]
	}

	s.head = 0
	s.count = len(snaps)
	copy(s.entries, snaps)
}
