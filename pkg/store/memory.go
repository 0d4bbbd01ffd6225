package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/griddeck/griddeck/pkg/observability"
)

// MemoryStore keeps records in process memory. Useful for development
// and tests; nothing survives a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

// Get returns the record with the given id.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()

	if !ok {
		err := notFound(id)
		observability.Store().OnGet(ctx, "memory", id, err)
		return nil, err
	}
	observability.Store().OnGet(ctx, "memory", id, nil)
	return &rec, nil
}

// Put inserts or replaces a record.
func (s *MemoryStore) Put(ctx context.Context, rec *Record) error {
	if err := ValidateID(rec.ID); err != nil {
		observability.Store().OnPut(ctx, "memory", rec.ID, err)
		return err
	}
	rec.UpdatedAt = time.Now().UTC()

	s.mu.Lock()
	s.records[rec.ID] = *rec
	s.mu.Unlock()

	observability.Store().OnPut(ctx, "memory", rec.ID, nil)
	return nil
}

// Delete removes a record.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	_, ok := s.records[id]
	delete(s.records, id)
	s.mu.Unlock()

	if !ok {
		err := notFound(id)
		observability.Store().OnDelete(ctx, "memory", id, err)
		return err
	}
	observability.Store().OnDelete(ctx, "memory", id, nil)
	return nil
}

// List returns all records, most recently updated first.
func (s *MemoryStore) List(ctx context.Context) ([]Record, error) {
	s.mu.RLock()
	out := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Close does nothing.
func (s *MemoryStore) Close() error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
