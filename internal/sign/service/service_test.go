package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"underwriter/internal/events"
	quotemodels "underwriter/internal/quote/models"
	"underwriter/internal/sign/metrics"
	"underwriter/internal/sign/models"
	"underwriter/internal/sign/ports"
	"underwriter/internal/sign/service/mocks"
	strategymocks "underwriter/internal/sign/strategy/mocks"
	dErrors "underwriter/pkg/domain-errors"
	"underwriter/pkg/platform/sentinel"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks QuoteStore,SessionStore,Strategies
type ServiceSuite struct {
	suite.Suite
	ctx        context.Context
	now        time.Time
	quotes     *mocks.MockQuoteStore
	sessions   *mocks.MockSessionStore
	strategies *mocks.MockStrategies
	strategy   *strategymocks.MockStrategy
	members    *strategymocks.MockMemberRegistry
	outbox     *events.MemoryOutbox
	metrics    *metrics.Metrics
	service    *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.ctx = context.Background()
	s.now = time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)
	s.quotes = mocks.NewMockQuoteStore(ctrl)
	s.sessions = mocks.NewMockSessionStore(ctrl)
	s.strategies = mocks.NewMockStrategies(ctrl)
	s.strategy = strategymocks.NewMockStrategy(ctrl)
	s.members = strategymocks.NewMockMemberRegistry(ctrl)
	s.outbox = events.NewMemoryOutbox()
	s.metrics = metrics.NewWith(prometheus.NewRegistry())
	s.service = New(s.quotes, s.sessions, s.strategies, s.members, s.outbox,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(s.metrics),
		WithClock(func() time.Time { return s.now }),
	)
}

func ptr[T any](v T) *T { return &v }

func (s *ServiceSuite) quote(kind quotemodels.DataKind, ssn string, memberID *string) *quotemodels.Quote {
	q, err := quotemodels.NewQuote(quotemodels.NewQuoteParams{
		Kind:     kind,
		Patch:    quotemodels.Patch{SSN: ptr(ssn), FirstName: ptr("Anna"), LastName: ptr("Svensson")},
		MemberID: memberID,
		Now:      s.now.Add(-time.Hour),
	})
	s.Require().NoError(err)
	quoted, err := q.Complete(decimal.NewFromInt(99), "", s.now.Add(-time.Hour))
	s.Require().NoError(err)
	return quoted
}

func (s *ServiceSuite) swedishQuote() *quotemodels.Quote {
	return s.quote(quotemodels.KindSwedishApartment, "199001011239", ptr("member-1"))
}

func ids(quotes ...*quotemodels.Quote) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, q.ID)
	}
	return out
}

func (s *ServiceSuite) start(quotes ...*quotemodels.Quote) (models.StartSignResponse, error) {
	return s.service.StartSign(s.ctx, StartSignRequest{
		QuoteIDs: ids(quotes...),
		Context:  models.SignContext{MemberID: "member-1", IPAddress: "10.0.0.1"},
	})
}

func (s *ServiceSuite) assertRefused(resp models.StartSignResponse, err error, code models.FailureCode) {
	s.Require().NoError(err)
	failed, ok := resp.(models.FailedToStart)
	s.Require().True(ok, "expected FailedToStart, got %T", resp)
	s.Equal(code, failed.Code)
	s.NotEmpty(failed.Message)
}

func (s *ServiceSuite) TestStartSignEmptyBundle() {
	resp, err := s.service.StartSign(s.ctx, StartSignRequest{})
	s.assertRefused(resp, err, models.CodeEmptyListOfQuotes)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.StartAttempts.WithLabelValues("", string(models.CodeEmptyListOfQuotes))))
}

func (s *ServiceSuite) TestStartSignUnknownQuote() {
	id := uuid.New()
	s.quotes.EXPECT().FindByIDs(gomock.Any(), []uuid.UUID{id}).Return(nil, sentinel.ErrNotFound)

	_, err := s.service.StartSign(s.ctx, StartSignRequest{QuoteIDs: []uuid.UUID{id}})
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestStartSignMemberChecks() {
	s.Run("quote without member", func() {
		q := s.quote(quotemodels.KindSwedishApartment, "199001011239", nil)
		s.quotes.EXPECT().FindByIDs(gomock.Any(), ids(q)).Return([]*quotemodels.Quote{q}, nil)
		resp, err := s.start(q)
		s.assertRefused(resp, err, models.CodeNoMemberIDOnQuote)
	})

	s.Run("quote of another member", func() {
		q := s.quote(quotemodels.KindSwedishApartment, "199001011239", ptr("member-2"))
		s.quotes.EXPECT().FindByIDs(gomock.Any(), ids(q)).Return([]*quotemodels.Quote{q}, nil)
		resp, err := s.start(q)
		s.assertRefused(resp, err, models.CodeDifferentMemberID)
	})

	s.Run("member already signed", func() {
		q := s.swedishQuote()
		s.quotes.EXPECT().FindByIDs(gomock.Any(), ids(q)).Return([]*quotemodels.Quote{q}, nil)
		s.members.EXPECT().IsAlreadySigned(gomock.Any(), "member-1").Return(true, nil)
		resp, err := s.start(q)
		s.assertRefused(resp, err, models.CodeMemberAlreadySigned)
	})

	s.Run("member registry down", func() {
		q := s.swedishQuote()
		s.quotes.EXPECT().FindByIDs(gomock.Any(), ids(q)).Return([]*quotemodels.Quote{q}, nil)
		s.members.EXPECT().IsAlreadySigned(gomock.Any(), "member-1").Return(false, context.DeadlineExceeded)
		_, err := s.start(q)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
}

func (s *ServiceSuite) TestStartSignQuoteStates() {
	expired := s.swedishQuote()
	expired.CreatedAt = s.now.Add(-expired.Validity - time.Minute)

	signed, err := s.swedishQuote().Sign(quotemodels.SignProof{}, s.now)
	s.Require().NoError(err)

	incomplete, err := quotemodels.NewQuote(quotemodels.NewQuoteParams{
		Kind:     quotemodels.KindSwedishApartment,
		MemberID: ptr("member-1"),
		Now:      s.now,
	})
	s.Require().NoError(err)

	cases := []struct {
		name  string
		quote *quotemodels.Quote
		code  models.FailureCode
	}{
		{"expired", expired, models.CodeQuoteExpired},
		{"signed", signed, models.CodeMemberHasExistingInsurance},
		{"incomplete", incomplete, models.CodeQuoteNotSignable},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.quotes.EXPECT().FindByIDs(gomock.Any(), ids(tc.quote)).Return([]*quotemodels.Quote{tc.quote}, nil)
			s.members.EXPECT().IsAlreadySigned(gomock.Any(), "member-1").Return(false, nil)
			resp, err := s.start(tc.quote)
			s.assertRefused(resp, err, tc.code)
		})
	}
}

func (s *ServiceSuite) TestStartSignPersonalInfoMismatch() {
	contents := s.quote(quotemodels.KindNorwegianHomeContents, "01019012345", ptr("member-1"))
	travel := s.quote(quotemodels.KindNorwegianTravel, "02029012345", ptr("member-1"))
	s.quotes.EXPECT().FindByIDs(gomock.Any(), ids(contents, travel)).Return([]*quotemodels.Quote{contents, travel}, nil)
	s.members.EXPECT().IsAlreadySigned(gomock.Any(), "member-1").Return(false, nil)

	resp, err := s.start(contents, travel)
	s.assertRefused(resp, err, models.CodePersonalInfoNotMatching)
}

func (s *ServiceSuite) TestStartSignSsnFormattingIsNotAMismatch() {
	contents := s.quote(quotemodels.KindDanishHomeContents, "010190-1234", ptr("member-1"))
	accident := s.quote(quotemodels.KindDanishAccident, "0101901234", ptr("member-1"))
	quotes := []*quotemodels.Quote{contents, accident}
	started := models.SimpleSignSession{SessionID: uuid.New()}

	s.quotes.EXPECT().FindByIDs(gomock.Any(), ids(contents, accident)).Return(quotes, nil)
	s.members.EXPECT().IsAlreadySigned(gomock.Any(), "member-1").Return(false, nil)
	s.strategies.EXPECT().For(quotes).Return(s.strategy)
	s.strategy.EXPECT().Method(quotes).Return(models.SignMethodSimpleSign)
	s.strategy.EXPECT().StartSign(gomock.Any(), quotes, gomock.Any()).Return(started, nil)

	resp, err := s.start(contents, accident)
	s.Require().NoError(err)
	s.Equal(started, resp)
}

func (s *ServiceSuite) TestStartSignSingleNorwegianQuote() {
	travel := s.quote(quotemodels.KindNorwegianTravel, "01019012345", ptr("member-1"))
	s.quotes.EXPECT().FindByIDs(gomock.Any(), ids(travel)).Return([]*quotemodels.Quote{travel}, nil)
	s.members.EXPECT().IsAlreadySigned(gomock.Any(), "member-1").Return(false, nil)

	resp, err := s.start(travel)
	s.assertRefused(resp, err, models.CodeSingleQuoteCannotBeAlone)
}

func (s *ServiceSuite) TestStartSignDelegatesToStrategy() {
	q := s.swedishQuote()
	quotes := []*quotemodels.Quote{q}
	started := models.SwedishBankIDSession{SessionID: uuid.New(), AutoStartToken: "token"}

	s.quotes.EXPECT().FindByIDs(gomock.Any(), ids(q)).Return(quotes, nil)
	s.members.EXPECT().IsAlreadySigned(gomock.Any(), "member-1").Return(false, nil)
	s.strategies.EXPECT().For(quotes).Return(s.strategy)
	s.strategy.EXPECT().Method(quotes).Return(models.SignMethodSwedishBankID)
	s.strategy.EXPECT().StartSign(gomock.Any(), quotes, models.SignContext{MemberID: "member-1", IPAddress: "10.0.0.1"}).
		Return(started, nil)

	resp, err := s.start(q)
	s.Require().NoError(err)
	s.Equal(started, resp)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.StartAttempts.WithLabelValues(string(models.SignMethodSwedishBankID), "started")))
}

func (s *ServiceSuite) TestSignMethodFor() {
	s.Run("routes a valid bundle", func() {
		q := s.swedishQuote()
		quotes := []*quotemodels.Quote{q}
		s.quotes.EXPECT().FindByIDs(gomock.Any(), ids(q)).Return(quotes, nil)
		s.strategies.EXPECT().For(quotes).Return(s.strategy)
		s.strategy.EXPECT().Method(quotes).Return(models.SignMethodSwedishBankID)

		method, err := s.service.SignMethodFor(s.ctx, ids(q))
		s.Require().NoError(err)
		s.Equal(models.SignMethodSwedishBankID, method)
	})

	s.Run("rejects a bundle that cannot be signed together", func() {
		travel := s.quote(quotemodels.KindNorwegianTravel, "01019012345", ptr("member-1"))
		s.quotes.EXPECT().FindByIDs(gomock.Any(), ids(travel)).Return([]*quotemodels.Quote{travel}, nil)

		_, err := s.service.SignMethodFor(s.ctx, ids(travel))
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("requires ids", func() {
		_, err := s.service.SignMethodFor(s.ctx, nil)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) pendingSession(quotes ...*quotemodels.Quote) *models.SignSession {
	return &models.SignSession{
		ID:        uuid.New(),
		Method:    models.SignMethodSwedishBankID,
		QuoteIDs:  ids(quotes...),
		Status:    models.SessionPending,
		CreatedAt: s.now.Add(-time.Minute),
	}
}

func (s *ServiceSuite) TestCompletedSignSessionSignsEveryQuote() {
	contents := s.quote(quotemodels.KindNorwegianHomeContents, "01019012345", ptr("member-1"))
	travel := s.quote(quotemodels.KindNorwegianTravel, "01019012345", ptr("member-1"))
	sess := s.pendingSession(contents, travel)

	var updated []*quotemodels.Quote
	gomock.InOrder(
		s.sessions.EXPECT().Find(gomock.Any(), sess.ID).Return(sess, nil),
		s.quotes.EXPECT().FindByIDs(gomock.Any(), sess.QuoteIDs).Return([]*quotemodels.Quote{contents, travel}, nil),
		s.quotes.EXPECT().Update(gomock.Any(), gomock.Any()).Times(2).DoAndReturn(
			func(_ context.Context, q *quotemodels.Quote) error {
				updated = append(updated, q)
				return nil
			}),
		s.sessions.EXPECT().MarkCompleted(gomock.Any(), sess.ID, s.now).Return(nil),
		s.members.EXPECT().MemberSigned(gomock.Any(), ports.SignedMember{
			MemberID:  "member-1",
			SSN:       "01019012345",
			SessionID: sess.ID,
			QuoteIDs:  sess.QuoteIDs,
		}).Return(nil),
	)

	err := s.service.CompletedSignSession(s.ctx, sess.ID, models.SwedishBankIDCompletion{ReferenceToken: "ref"})
	s.Require().NoError(err)

	s.Require().Len(updated, 2)
	for _, q := range updated {
		s.Equal(quotemodels.StateSigned, q.State)
		s.Equal("ref", q.SignProof.ReferenceToken)
	}
	s.Len(s.outbox.Events(events.TypeQuoteSigned), 2)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Completions.WithLabelValues("signed")))
}

func (s *ServiceSuite) TestCompletedSignSessionTwiceIsNoop() {
	sess := s.pendingSession(s.swedishQuote())
	sess.Status = models.SessionCompleted
	s.sessions.EXPECT().Find(gomock.Any(), sess.ID).Return(sess, nil)

	s.NoError(s.service.CompletedSignSession(s.ctx, sess.ID, nil))
	s.Empty(s.outbox.Events())
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Completions.WithLabelValues("duplicate")))
}

func (s *ServiceSuite) TestCompletedSignSessionLosingTheClaimIsNoop() {
	q := s.swedishQuote()
	sess := s.pendingSession(q)
	done := *sess
	done.Status = models.SessionCompleted

	gomock.InOrder(
		s.sessions.EXPECT().Find(gomock.Any(), sess.ID).Return(sess, nil),
		s.quotes.EXPECT().FindByIDs(gomock.Any(), sess.QuoteIDs).Return([]*quotemodels.Quote{q}, nil),
		s.quotes.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil),
		s.sessions.EXPECT().MarkCompleted(gomock.Any(), sess.ID, s.now).Return(sentinel.ErrAlreadyUsed),
		s.sessions.EXPECT().Find(gomock.Any(), sess.ID).Return(&done, nil),
	)

	s.NoError(s.service.CompletedSignSession(s.ctx, sess.ID, models.NoExtraData{}))
}

func (s *ServiceSuite) TestCompletedSignSessionOfFailedSession() {
	sess := s.pendingSession(s.swedishQuote())
	sess.Status = models.SessionFailed
	s.sessions.EXPECT().Find(gomock.Any(), sess.ID).Return(sess, nil)

	err := s.service.CompletedSignSession(s.ctx, sess.ID, nil)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
}

func (s *ServiceSuite) TestCompletedSignSessionUnknown() {
	id := uuid.New()
	s.sessions.EXPECT().Find(gomock.Any(), id).Return(nil, sentinel.ErrNotFound)

	err := s.service.CompletedSignSession(s.ctx, id, nil)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestCompletedSignSessionAfterExpiry() {
	q := s.swedishQuote()
	q.CreatedAt = s.now.Add(-q.Validity - time.Minute)
	sess := s.pendingSession(q)

	var failed *quotemodels.Quote
	gomock.InOrder(
		s.sessions.EXPECT().Find(gomock.Any(), sess.ID).Return(sess, nil),
		s.quotes.EXPECT().FindByIDs(gomock.Any(), sess.QuoteIDs).Return([]*quotemodels.Quote{q}, nil),
		s.quotes.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q *quotemodels.Quote) error {
				failed = q
				return nil
			}),
		s.sessions.EXPECT().MarkFailed(gomock.Any(), sess.ID, string(models.CodeQuoteExpired), s.now).Return(nil),
	)

	err := s.service.CompletedSignSession(s.ctx, sess.ID, models.NoExtraData{})
	s.True(dErrors.HasCode(err, dErrors.CodeExpired))
	s.Require().NotNil(failed)
	s.Equal(quotemodels.StateFailed, failed.State)
	s.Len(s.outbox.Events(events.TypeQuoteFailed), 1)
	s.Len(s.outbox.Events(events.TypeSignFailed), 1)
	s.Empty(s.outbox.Events(events.TypeQuoteSigned))
}

func (s *ServiceSuite) TestCompletedSignSessionMemberNotifyFailureIsNotFatal() {
	q := s.swedishQuote()
	sess := s.pendingSession(q)

	s.sessions.EXPECT().Find(gomock.Any(), sess.ID).Return(sess, nil)
	s.quotes.EXPECT().FindByIDs(gomock.Any(), sess.QuoteIDs).Return([]*quotemodels.Quote{q}, nil)
	s.quotes.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
	s.sessions.EXPECT().MarkCompleted(gomock.Any(), sess.ID, s.now).Return(nil)
	s.members.EXPECT().MemberSigned(gomock.Any(), gomock.Any()).Return(context.DeadlineExceeded)

	s.NoError(s.service.CompletedSignSession(s.ctx, sess.ID, models.NoExtraData{}))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.MemberNotifyFailures))
}

func (s *ServiceSuite) TestFailedSignSession() {
	q := s.swedishQuote()
	sess := s.pendingSession(q)

	s.Run("marks the session failed", func() {
		s.sessions.EXPECT().Find(gomock.Any(), sess.ID).Return(sess, nil)
		s.sessions.EXPECT().MarkFailed(gomock.Any(), sess.ID, "user cancelled", s.now).Return(nil)

		s.Require().NoError(s.service.FailedSignSession(s.ctx, sess.ID, "user cancelled"))
		s.Len(s.outbox.Events(events.TypeSignFailed), 1)
	})

	s.Run("repeat is a no-op", func() {
		failed := *sess
		failed.Status = models.SessionFailed
		s.sessions.EXPECT().Find(gomock.Any(), sess.ID).Return(&failed, nil)

		s.NoError(s.service.FailedSignSession(s.ctx, sess.ID, "user cancelled"))
		s.Len(s.outbox.Events(events.TypeSignFailed), 1)
	})

	s.Run("completed session cannot fail", func() {
		done := *sess
		done.Status = models.SessionCompleted
		s.sessions.EXPECT().Find(gomock.Any(), sess.ID).Return(&done, nil)

		err := s.service.FailedSignSession(s.ctx, sess.ID, "late")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
	})
}
