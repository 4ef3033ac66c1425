package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"underwriter/internal/quote/models"
	"underwriter/pkg/platform/sentinel"
)

type QuoteStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *QuoteStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestQuoteStoreSuite(t *testing.T) {
	suite.Run(t, new(QuoteStoreSuite))
}

func (s *QuoteStoreSuite) newQuote() *models.Quote {
	ssn := "199001011239"
	q, err := models.NewQuote(models.NewQuoteParams{
		Kind:  models.KindSwedishApartment,
		Patch: models.Patch{SSN: &ssn},
		Now:   time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
	})
	s.Require().NoError(err)
	return q
}

func (s *QuoteStoreSuite) TestInsertAndFind() {
	s.Run("finds inserted quote with version 1", func() {
		q := s.newQuote()
		s.Require().NoError(s.store.Insert(s.ctx, q))
		s.Equal(1, q.Version)

		found, err := s.store.FindByID(s.ctx, q.ID)
		s.Require().NoError(err)
		s.Equal(q.ID, found.ID)
		s.Equal(models.KindSwedishApartment, found.Data.Kind())
	})

	s.Run("rejects duplicate id", func() {
		q := s.newQuote()
		s.Require().NoError(s.store.Insert(s.ctx, q))
		dup := *q
		s.ErrorIs(s.store.Insert(s.ctx, &dup), sentinel.ErrConflict)
	})

	s.Run("returns ErrNotFound for unknown id", func() {
		_, err := s.store.FindByID(s.ctx, uuid.New())
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *QuoteStoreSuite) TestFindByIDsKeepsRequestOrder() {
	a, b := s.newQuote(), s.newQuote()
	s.Require().NoError(s.store.Insert(s.ctx, a))
	s.Require().NoError(s.store.Insert(s.ctx, b))

	found, err := s.store.FindByIDs(s.ctx, []uuid.UUID{b.ID, a.ID})
	s.Require().NoError(err)
	s.Require().Len(found, 2)
	s.Equal(b.ID, found[0].ID)
	s.Equal(a.ID, found[1].ID)

	_, err = s.store.FindByIDs(s.ctx, []uuid.UUID{a.ID, uuid.New()})
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *QuoteStoreSuite) TestOptimisticUpdate() {
	q := s.newQuote()
	s.Require().NoError(s.store.Insert(s.ctx, q))

	first, err := s.store.FindByID(s.ctx, q.ID)
	s.Require().NoError(err)
	second, err := s.store.FindByID(s.ctx, q.ID)
	s.Require().NoError(err)

	name := "Anna"
	first, err = first.Update(models.Patch{FirstName: &name}, time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.store.Update(s.ctx, first))
	s.Equal(2, first.Version)

	s.ErrorIs(s.store.Update(s.ctx, second), sentinel.ErrConflict)

	found, err := s.store.FindByID(s.ctx, q.ID)
	s.Require().NoError(err)
	s.Equal("Anna", found.Data.Holder().FirstName)
	s.Equal(2, found.Version)
}

func (s *QuoteStoreSuite) TestCallerCopyDoesNotLeakIntoStore() {
	q := s.newQuote()
	s.Require().NoError(s.store.Insert(s.ctx, q))

	q.State = models.StateFailed

	found, err := s.store.FindByID(s.ctx, q.ID)
	s.Require().NoError(err)
	s.Equal(models.StateIncomplete, found.State)
}

func (s *QuoteStoreSuite) TestUpdateUnknownQuote() {
	s.ErrorIs(s.store.Update(s.ctx, s.newQuote()), sentinel.ErrNotFound)
}
