package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"underwriter/internal/sign/models"
	"underwriter/pkg/platform/sentinel"
)

type sessionStore interface {
	Insert(ctx context.Context, method models.SignMethod, quoteIDs []uuid.UUID) (uuid.UUID, error)
	Find(ctx context.Context, id uuid.UUID) (*models.SignSession, error)
	MarkCompleted(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string, at time.Time) error
}

// SessionStoreSuite is run against every backend.
type SessionStoreSuite struct {
	suite.Suite
	ctx      context.Context
	newStore func() sessionStore
	store    sessionStore
}

func (s *SessionStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.newStore()
}

func TestInMemorySessionStore(t *testing.T) {
	suite.Run(t, &SessionStoreSuite{newStore: func() sessionStore { return NewInMemory() }})
}

func (s *SessionStoreSuite) TestInsertAndFind() {
	quoteIDs := []uuid.UUID{uuid.New(), uuid.New()}
	id, err := s.store.Insert(s.ctx, models.SignMethodDanishBankID, quoteIDs)
	s.Require().NoError(err)
	s.NotEqual(uuid.Nil, id)

	sess, err := s.store.Find(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(id, sess.ID)
	s.Equal(models.SignMethodDanishBankID, sess.Method)
	s.Equal(quoteIDs, sess.QuoteIDs)
	s.Equal(models.SessionPending, sess.Status)
	s.Nil(sess.FinishedAt)
	s.False(sess.IsTerminal())
}

func (s *SessionStoreSuite) TestFindUnknown() {
	_, err := s.store.Find(s.ctx, uuid.New())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *SessionStoreSuite) TestCompleteIsOneShot() {
	id, err := s.store.Insert(s.ctx, models.SignMethodSwedishBankID, []uuid.UUID{uuid.New()})
	s.Require().NoError(err)
	at := time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

	s.Require().NoError(s.store.MarkCompleted(s.ctx, id, at))
	s.ErrorIs(s.store.MarkCompleted(s.ctx, id, at), sentinel.ErrAlreadyUsed)
	s.ErrorIs(s.store.MarkFailed(s.ctx, id, "late failure", at), sentinel.ErrAlreadyUsed)

	sess, err := s.store.Find(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(models.SessionCompleted, sess.Status)
	s.Require().NotNil(sess.FinishedAt)
	s.True(at.Equal(*sess.FinishedAt))
}

func (s *SessionStoreSuite) TestFailRecordsReason() {
	id, err := s.store.Insert(s.ctx, models.SignMethodSimpleSign, []uuid.UUID{uuid.New()})
	s.Require().NoError(err)

	s.Require().NoError(s.store.MarkFailed(s.ctx, id, "user cancelled", time.Now()))

	sess, err := s.store.Find(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(models.SessionFailed, sess.Status)
	s.Equal("user cancelled", sess.Reason)
}

func (s *SessionStoreSuite) TestClaimUnknownSession() {
	s.ErrorIs(s.store.MarkCompleted(s.ctx, uuid.New(), time.Now()), sentinel.ErrNotFound)
	s.ErrorIs(s.store.MarkFailed(s.ctx, uuid.New(), "x", time.Now()), sentinel.ErrNotFound)
}

func (s *SessionStoreSuite) TestConcurrentClaimsHaveOneWinner() {
	id, err := s.store.Insert(s.ctx, models.SignMethodNorwegianBankID, []uuid.UUID{uuid.New()})
	s.Require().NoError(err)

	const goroutines = 20
	var (
		wg      sync.WaitGroup
		won     atomic.Int32
		lost    atomic.Int32
		unknown atomic.Int32
	)
	for i := range goroutines {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var err error
			if i%2 == 0 {
				err = s.store.MarkCompleted(s.ctx, id, time.Now())
			} else {
				err = s.store.MarkFailed(s.ctx, id, "racing", time.Now())
			}
			switch {
			case err == nil:
				won.Add(1)
			case errors.Is(err, sentinel.ErrAlreadyUsed):
				lost.Add(1)
			default:
				unknown.Add(1)
			}
		}(i)
	}
	wg.Wait()

	s.Equal(int32(1), won.Load())
	s.Equal(int32(goroutines-1), lost.Load())
	s.Zero(unknown.Load())
}
