package record

import (
	"context"
	"maps"
	"sync"

	"recordcheck/internal/validation/models"
)

// InMemory holds canonical records in process memory. Used for local development and tests;
// production lookups go through PostgresStore.
type InMemory struct {
	mu      sync.RWMutex
	records map[string]models.CanonicalRecord
	order   []string
}

// NewInMemory creates an empty in-memory record store.
func NewInMemory() *InMemory {
	return &InMemory{records: make(map[string]models.CanonicalRecord)}
}

// Put stores or replaces the record for subjectID. Replacing keeps the original position.
func (s *InMemory) Put(subjectID string, record models.CanonicalRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[subjectID]; !ok {
		s.order = append(s.order, subjectID)
	}
	s.records[subjectID] = maps.Clone(record)
}

// Delete removes a record. Deleting an unknown subject is a no-op.
func (s *InMemory) Delete(subjectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[subjectID]; !ok {
		return
	}
	delete(s.records, subjectID)
	for i, id := range s.order {
		if id == subjectID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *InMemory) Get(_ context.Context, subjectID string) (models.CanonicalRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[subjectID]
	if !ok {
		return nil, false
	}
	return maps.Clone(record), true
}

func (s *InMemory) Exists(ctx context.Context, subjectID string) bool {
	_, ok := s.Get(ctx, subjectID)
	return ok
}

// ListIDs returns subject ids in insertion order.
func (s *InMemory) ListIDs(_ context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.order...)
}
