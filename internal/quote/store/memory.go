package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"underwriter/internal/quote/models"
	"underwriter/pkg/platform/sentinel"
)

// InMemory keeps quotes in a map. Quotes are stored by value so later
// changes to a caller's copy never leak into the store.
type InMemory struct {
	mu     sync.RWMutex
	quotes map[uuid.UUID]models.Quote
}

func NewInMemory() *InMemory {
	return &InMemory{quotes: make(map[uuid.UUID]models.Quote)}
}

func (s *InMemory) Insert(_ context.Context, q *models.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.quotes[q.ID]; exists {
		return sentinel.ErrConflict
	}
	q.Version = 1
	s.quotes[q.ID] = *q
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.quotes[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &q, nil
}

// FindByIDs returns the quotes in the order of ids. Any unknown id fails
// the whole lookup with sentinel.ErrNotFound.
func (s *InMemory) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*models.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Quote, 0, len(ids))
	for _, id := range ids {
		q, ok := s.quotes[id]
		if !ok {
			return nil, sentinel.ErrNotFound
		}
		out = append(out, &q)
	}
	return out, nil
}

func (s *InMemory) Update(_ context.Context, q *models.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.quotes[q.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if current.Version != q.Version {
		return sentinel.ErrConflict
	}
	q.Version++
	s.quotes[q.ID] = *q
	return nil
}
