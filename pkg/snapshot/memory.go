package snapshot

import (
	"context"
	"sync"
	"time"

	"github.com/graphtint/graphtint/pkg/errors"
)

// MemoryStore is an in-process snapshot store.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]*Snapshot
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryStore creates an in-memory store. A zero TTL disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		items: make(map[string]*Snapshot),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Put stores a snapshot.
func (s *MemoryStore) Put(_ context.Context, snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prepare(snap, s.ttl, s.now())
	cp := *snap
	s.items[snap.ID] = &cp
	return nil
}

// Get retrieves a snapshot. Expired entries are dropped on access.
func (s *MemoryStore) Get(_ context.Context, id string) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.items[id]
	if ok && expired(snap, s.now()) {
		delete(s.items, id)
		ok = false
	}
	if !ok {
		return nil, errors.New(errors.ErrCodeSnapshotNotFound, "snapshot %s not found", id)
	}
	cp := *snap
	return &cp, nil
}

// Delete removes a snapshot.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
