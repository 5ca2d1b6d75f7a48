package report

import (
	"context"
	"sort"
	"sync"

	"github.com/rharris115/callable-graph/internal/app/dto"
	"github.com/rharris115/callable-graph/internal/infrastructure/metrics"
)

// InMemoryStore keeps invocation logs in process memory. It is the default
// store for local usage and tests.
type InMemoryStore struct {
	mu   sync.RWMutex
	logs map[string]*dto.InvocationLog
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{logs: make(map[string]*dto.InvocationLog)}
}

// Save stores a log, replacing any record with the same ID.
func (s *InMemoryStore) Save(_ context.Context, log *dto.InvocationLog) error {
	if log == nil {
		return ErrNilLog
	}
	if log.ID == "" {
		return ErrInvalidLogID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *log
	s.logs[log.ID] = &stored
	metrics.IncReportsSaved()
	return nil
}

// Load retrieves a log by ID.
func (s *InMemoryStore) Load(_ context.Context, id string) (*dto.InvocationLog, error) {
	if id == "" {
		return nil, ErrInvalidLogID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.logs[id]
	if !ok {
		return nil, ErrLogNotFound
	}
	log := *stored
	return &log, nil
}

// List returns logs for the given graph name, newest first. An empty name
// matches every log.
func (s *InMemoryStore) List(_ context.Context, graphName string) ([]*dto.InvocationLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var logs []*dto.InvocationLog
	for _, stored := range s.logs {
		if graphName != "" && stored.GraphName != graphName {
			continue
		}
		log := *stored
		logs = append(logs, &log)
	}
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].StartedAt.After(logs[j].StartedAt)
	})
	return logs, nil
}

// Delete removes a log by ID.
func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return ErrInvalidLogID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.logs[id]; !ok {
		return ErrLogNotFound
	}
	delete(s.logs, id)
	return nil
}
