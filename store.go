package ffxl

import "sync/atomic"

// Store holds the current snapshot behind an atomic pointer. Readers always
// see either the old snapshot in full or the new one in full; replacement is
// the only mutation point and needs no locking. A host application typically
// owns one Store and swaps in a fresh snapshot on configuration reload.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore creates a store serving the given snapshot. A nil snapshot is
// replaced with an empty one so reads never observe nil.
func NewStore(s *Snapshot) *Store {
	st := &Store{}
	st.current.Store(orEmpty(s))
	return st
}

// Snapshot returns the currently served snapshot.
func (st *Store) Snapshot() *Snapshot {
	return st.current.Load()
}

// Swap atomically replaces the served snapshot and returns the previous one.
// In-flight evaluations keep using the snapshot they started with.
func (st *Store) Swap(next *Snapshot) *Snapshot {
	return st.current.Swap(orEmpty(next))
}

func orEmpty(s *Snapshot) *Snapshot {
	if s != nil {
		return s
	}
	empty, _ := NewSnapshot(nil)
	return empty
}
