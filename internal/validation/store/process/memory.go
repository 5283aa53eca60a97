package process

import (
	"context"
	"sync"

	"recordcheck/internal/validation/models"
	id "recordcheck/pkg/domain"
)

// InMemory keeps processes in a map guarded by a RWMutex. Not durable: state is lost on
// restart. Reads and writes always go through copies.
type InMemory struct {
	mu        sync.RWMutex
	processes map[id.ProcessID]*models.ValidationProcess
	clock     Clock
}

// NewInMemory creates an empty in-memory process store.
func NewInMemory(opts ...Option) *InMemory {
	o := buildOptions(opts)
	return &InMemory{
		processes: make(map[id.ProcessID]*models.ValidationProcess),
		clock:     o.clock,
	}
}

func (s *InMemory) Create(_ context.Context, subjectID id.SubjectID, contact *string) (*models.ValidationProcess, error) {
	p, err := models.NewValidationProcess(id.NewProcessID(), subjectID, contact, s.clock())
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processes[p.ProcessID] = p
	return p.Clone(), nil
}

func (s *InMemory) FindByID(_ context.Context, processID id.ProcessID) (*models.ValidationProcess, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.processes[processID]
	if !ok {
		return nil, models.ErrProcessNotFound
	}
	return p.Clone(), nil
}

func (s *InMemory) UpdateStatus(_ context.Context, processID id.ProcessID, status models.Status, outcome models.Outcome) (*models.ValidationProcess, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.processes[processID]
	if !ok {
		return nil, models.ErrProcessNotFound
	}
	next := current.Clone()
	if err := next.Transition(status, outcome, s.clock()); err != nil {
		return nil, err
	}
	s.processes[processID] = next
	return next.Clone(), nil
}

// Len reports how many processes are held.
func (s *InMemory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.processes)
}
