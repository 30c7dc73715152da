// Package cache implements the client-side query cache: an in-memory keyed
// store of previously fetched server collections with staleness tracking and
// snapshot/restore support for optimistic mutations.
//
// The store is transient by design; nothing survives a process restart.
// All operations are synchronous and never block on I/O — refetching stale
// data is the caller's job (see the client package's read helpers).
package cache

import (
	"sync"
	"time"
)

// EntryState tracks what the read path is doing with an entry.
type EntryState int

const (
	StateIdle EntryState = iota
	StateFetching
	StateError
)

// NeverStale disables time-based staleness for an entry; only an explicit
// Invalidate makes it refetchable.
const NeverStale time.Duration = 0

type entry struct {
	data       any
	fetchedAt  time.Time
	staleAfter time.Duration
	state      EntryState
	stale      bool // set by Invalidate regardless of age
}

func (e *entry) isStale(now time.Time) bool {
	if e.stale {
		return true
	}
	if e.staleAfter == NeverStale {
		return false
	}
	return now.Sub(e.fetchedAt) > e.staleAfter
}

// Snapshot is an ephemeral, operation-scoped capture of one entry's value,
// structurally independent from the live entry. A snapshot of a missing
// entry restores to "missing".
type Snapshot struct {
	key     Key
	data    any
	existed bool
}

// Key returns the key the snapshot was taken from.
func (s Snapshot) Key() Key { return s.key }

// Store is the process-wide query cache. Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time // test seam
}

// NewStore constructs an empty cache.
func NewStore() *Store {
	return &Store{entries: make(map[string]*entry), now: time.Now}
}

// Get returns the cached value for key, whether it exists, and whether it is
// past its freshness window (or explicitly invalidated).
func (s *Store) Get(key Key) (value any, ok bool, stale bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key.String()]
	if !ok {
		return nil, false, false
	}
	return e.data, true, e.isStale(s.now())
}

// Put stores a freshly fetched value, resetting freshness metadata.
func (s *Store) Put(key Key, value any, staleAfter time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key.String()] = &entry{
		data:       value,
		fetchedAt:  s.now(),
		staleAfter: staleAfter,
		state:      StateIdle,
	}
	putsTotal.Inc()
}

// Set applies a pure updater function to the current value (nil old value if
// the entry is missing) and stores the result, preserving freshness
// metadata. Used for both optimistic writes and confirmed reconciliation.
// Updating a missing key creates an entry that is born stale: the value was
// fabricated client-side, never fetched, so reads serve it while a
// revalidation pulls the authoritative state.
func (s *Store) Set(key Key, updater func(old any) any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ks := key.String()
	e, ok := s.entries[ks]
	if !ok {
		e = &entry{staleAfter: NeverStale, fetchedAt: s.now(), stale: true}
		s.entries[ks] = e
	}
	e.data = updater(e.data)
}

// Invalidate marks every entry whose key starts with prefix as stale,
// forcing a refetch on next read.
func (s *Store) Invalidate(prefix Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ks, e := range s.entries {
		if Key(splitKey(ks)).HasPrefix(prefix) {
			e.stale = true
			invalidationsTotal.Inc()
		}
	}
}

// Snapshot returns a deep, independent copy of the entry's value for later
// rollback. Must be taken before the optimistic write it protects.
func (s *Store) Snapshot(key Key) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key.String()]
	if !ok {
		return Snapshot{key: key}, nil
	}
	cp, err := deepCopy(e.data)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{key: key, data: cp, existed: true}, nil
}

// Restore rewinds the entry to the snapshotted value. Restoring a snapshot
// of a missing entry deletes whatever an optimistic write created there.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ks := snap.key.String()
	if !snap.existed {
		delete(s.entries, ks)
		return
	}
	e, ok := s.entries[ks]
	if !ok {
		e = &entry{staleAfter: NeverStale, fetchedAt: s.now()}
		s.entries[ks] = e
	}
	e.data = snap.data
}

// TryMarkFetching flips the entry to the fetching state, returning false if
// a fetch is already in flight so background refetches stay single-flight.
func (s *Store) TryMarkFetching(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key.String()]
	if !ok {
		return true // nothing cached yet; caller fetches synchronously
	}
	if e.state == StateFetching {
		return false
	}
	e.state = StateFetching
	return true
}

// MarkIdle clears the fetching state after a refetch settles.
func (s *Store) MarkIdle(key Key) { s.setState(key, StateIdle) }

// MarkError records a failed refetch; the stale value remains served.
func (s *Store) MarkError(key Key) { s.setState(key, StateError) }

func (s *Store) setState(key Key, st EntryState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key.String()]; ok {
		e.state = st
	}
}

// Clear wipes every entry. Called on logout.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*entry)
}

// Len reports the number of cached entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// SetNow overrides the store's clock. Test seam only.
func (s *Store) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}
