// Package store persists sign sessions. Every backend lets a session leave
// PENDING exactly once; a second claim fails with sentinel.ErrAlreadyUsed.
package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"underwriter/internal/sign/models"
	"underwriter/pkg/platform/sentinel"
)

type InMemory struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]models.SignSession
	now      func() time.Time
}

func NewInMemory() *InMemory {
	return &InMemory{
		sessions: make(map[uuid.UUID]models.SignSession),
		now:      time.Now,
	}
}

func (s *InMemory) Insert(_ context.Context, method models.SignMethod, quoteIDs []uuid.UUID) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	s.sessions[id] = models.SignSession{
		ID:        id,
		Method:    method,
		QuoteIDs:  slices.Clone(quoteIDs),
		Status:    models.SessionPending,
		CreatedAt: s.now(),
	}
	return id, nil
}

func (s *InMemory) Find(_ context.Context, id uuid.UUID) (*models.SignSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	sess.QuoteIDs = slices.Clone(sess.QuoteIDs)
	return &sess, nil
}

func (s *InMemory) MarkCompleted(_ context.Context, id uuid.UUID, at time.Time) error {
	return s.claim(id, models.SessionCompleted, "", at)
}

func (s *InMemory) MarkFailed(_ context.Context, id uuid.UUID, reason string, at time.Time) error {
	return s.claim(id, models.SessionFailed, reason, at)
}

func (s *InMemory) claim(id uuid.UUID, status models.SessionStatus, reason string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	if sess.IsTerminal() {
		return sentinel.ErrAlreadyUsed
	}
	sess.Status = status
	sess.Reason = reason
	sess.FinishedAt = &at
	s.sessions[id] = sess
	return nil
}
