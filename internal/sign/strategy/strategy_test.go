package strategy

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"underwriter/internal/integrations"
	quotemodels "underwriter/internal/quote/models"
	"underwriter/internal/sign/models"
	"underwriter/internal/sign/ports"
	"underwriter/internal/sign/strategy/mocks"
)

//go:generate mockgen -source=strategy.go -destination=mocks/mocks.go -package=mocks SessionStore,Strategy
//go:generate mockgen -destination=mocks/signing.go -package=mocks underwriter/internal/sign/ports SwedishSigner,RedirectSigner,SimpleSigner,MemberRegistry
type StrategySuite struct {
	suite.Suite
	ctx       context.Context
	now       time.Time
	sessionID uuid.UUID
	sessions  *mocks.MockSessionStore
	swedish   *mocks.MockSwedishSigner
	redirect  *mocks.MockRedirectSigner
	simple    *mocks.MockSimpleSigner
	opts      []Option
}

func TestStrategySuite(t *testing.T) {
	suite.Run(t, new(StrategySuite))
}

func (s *StrategySuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.ctx = context.Background()
	s.now = time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)
	s.sessionID = uuid.New()
	s.sessions = mocks.NewMockSessionStore(ctrl)
	s.swedish = mocks.NewMockSwedishSigner(ctrl)
	s.redirect = mocks.NewMockRedirectSigner(ctrl)
	s.simple = mocks.NewMockSimpleSigner(ctrl)
	s.opts = []Option{
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithClock(func() time.Time { return s.now }),
	}
}

func ptr[T any](v T) *T { return &v }

func (s *StrategySuite) quote(kind quotemodels.DataKind, patch quotemodels.Patch) *quotemodels.Quote {
	q, err := quotemodels.NewQuote(quotemodels.NewQuoteParams{
		Kind:     kind,
		Patch:    patch,
		MemberID: ptr("member-1"),
		Now:      s.now,
	})
	s.Require().NoError(err)
	return q
}

func (s *StrategySuite) swedishQuote() *quotemodels.Quote {
	return s.quote(quotemodels.KindSwedishApartment, quotemodels.Patch{SSN: ptr("199001011239")})
}

func (s *StrategySuite) norwegianBundle() []*quotemodels.Quote {
	return []*quotemodels.Quote{
		s.quote(quotemodels.KindNorwegianHomeContents, quotemodels.Patch{SSN: ptr("01019012345")}),
		s.quote(quotemodels.KindNorwegianTravel, quotemodels.Patch{SSN: ptr("01019012345")}),
	}
}

func (s *StrategySuite) TestRegistry() {
	sw := NewSwedish(s.sessions, s.swedish, s.opts...)
	rd := NewRedirect(s.sessions, s.redirect, s.opts...)
	sm := NewSimple(s.sessions, s.simple, s.opts...)

	s.Run("routes by market", func() {
		r := NewRegistry(sw, rd, sm, false)
		s.Same(sw, r.For([]*quotemodels.Quote{s.swedishQuote()}))
		s.Same(rd, r.For(s.norwegianBundle()))
	})

	s.Run("simple sign flag replaces redirect", func() {
		r := NewRegistry(sw, rd, sm, true)
		s.Same(sm, r.For(s.norwegianBundle()))
		s.Same(sw, r.For([]*quotemodels.Quote{s.swedishQuote()}))
	})

	s.Run("mixed strategies panic", func() {
		r := NewRegistry(sw, rd, sm, false)
		mixed := append([]*quotemodels.Quote{s.swedishQuote()}, s.norwegianBundle()...)
		s.Panics(func() { r.For(mixed) })
	})
}

func (s *StrategySuite) TestSwedishPersistsSessionBeforeProviderCall() {
	q := s.swedishQuote()
	q.CurrentInsurer = ptr("Other Insurer")
	strategy := NewSwedish(s.sessions, s.swedish, s.opts...)

	gomock.InOrder(
		s.sessions.EXPECT().Insert(gomock.Any(), models.SignMethodSwedishBankID, []uuid.UUID{q.ID}).Return(s.sessionID, nil),
		s.swedish.EXPECT().StartSwedishSign(gomock.Any(), ports.SwedishSignRequest{
			SessionID:   s.sessionID,
			MemberID:    "member-1",
			SSN:         "199001011239",
			IPAddress:   "10.0.0.1",
			IsSwitching: true,
		}).Return(&ports.SwedishSignResult{AutoStartToken: "auto-start"}, nil),
	)

	resp, err := strategy.StartSign(s.ctx, []*quotemodels.Quote{q}, models.SignContext{IPAddress: "10.0.0.1"})
	s.Require().NoError(err)
	s.Equal(models.SwedishBankIDSession{SessionID: s.sessionID, AutoStartToken: "auto-start"}, resp)
}

func (s *StrategySuite) TestSwedishMissingIPFallsBackToLoopback() {
	q := s.swedishQuote()
	strategy := NewSwedish(s.sessions, s.swedish, s.opts...)

	s.sessions.EXPECT().Insert(gomock.Any(), gomock.Any(), gomock.Any()).Return(s.sessionID, nil)
	s.swedish.EXPECT().StartSwedishSign(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req ports.SwedishSignRequest) (*ports.SwedishSignResult, error) {
			assert.Equal(s.T(), "127.0.0.1", req.IPAddress)
			assert.False(s.T(), req.IsSwitching)
			return &ports.SwedishSignResult{AutoStartToken: "t"}, nil
		})

	resp, err := strategy.StartSign(s.ctx, []*quotemodels.Quote{q}, models.SignContext{})
	s.Require().NoError(err)
	s.IsType(models.SwedishBankIDSession{}, resp)
}

func (s *StrategySuite) TestSwedishWithoutTokenFails() {
	q := s.swedishQuote()
	strategy := NewSwedish(s.sessions, s.swedish, s.opts...)

	s.sessions.EXPECT().Insert(gomock.Any(), gomock.Any(), gomock.Any()).Return(s.sessionID, nil)
	s.swedish.EXPECT().StartSwedishSign(gomock.Any(), gomock.Any()).
		Return(&ports.SwedishSignResult{InternalErrorMessage: "already in progress"}, nil)
	s.sessions.EXPECT().MarkFailed(gomock.Any(), s.sessionID, gomock.Any(), s.now).Return(nil)

	resp, err := strategy.StartSign(s.ctx, []*quotemodels.Quote{q}, models.SignContext{IPAddress: "10.0.0.1"})
	s.Require().NoError(err)
	s.Equal(models.FailedToStart{Code: models.CodeEmptyAuthToken, Message: "already in progress"}, resp)
}

func (s *StrategySuite) TestSwedishSessionStoreFailureIsAnError() {
	strategy := NewSwedish(s.sessions, s.swedish, s.opts...)
	s.sessions.EXPECT().Insert(gomock.Any(), gomock.Any(), gomock.Any()).Return(uuid.Nil, assert.AnError)

	_, err := strategy.StartSign(s.ctx, []*quotemodels.Quote{s.swedishQuote()}, models.SignContext{})
	s.ErrorIs(err, assert.AnError)
}

func (s *StrategySuite) TestRedirectRequiresTargetURLs() {
	strategy := NewRedirect(s.sessions, s.redirect, s.opts...)

	resp, err := strategy.StartSign(s.ctx, s.norwegianBundle(), models.SignContext{SuccessURL: "https://ok"})
	s.Require().NoError(err)
	s.Equal(models.Fail(models.CodeTargetURLNotProvided), resp)
}

func (s *StrategySuite) TestRedirectStarts() {
	quotes := s.norwegianBundle()
	strategy := NewRedirect(s.sessions, s.redirect, s.opts...)
	sc := models.SignContext{SuccessURL: "https://ok", FailURL: "https://fail"}

	gomock.InOrder(
		s.sessions.EXPECT().Insert(gomock.Any(), models.SignMethodNorwegianBankID, []uuid.UUID{quotes[0].ID, quotes[1].ID}).Return(s.sessionID, nil),
		s.redirect.EXPECT().StartRedirectSign(gomock.Any(), ports.RedirectSignRequest{
			SessionID:  s.sessionID,
			MemberID:   "member-1",
			SSN:        "01019012345",
			Market:     quotemodels.MarketNorway,
			SuccessURL: "https://ok",
			FailURL:    "https://fail",
		}).Return(&ports.RedirectSignResult{RedirectURL: "https://bankid/redirect"}, nil),
	)

	resp, err := strategy.StartSign(s.ctx, quotes, sc)
	s.Require().NoError(err)
	s.Equal(models.RedirectSession{SessionID: s.sessionID, RedirectURL: "https://bankid/redirect"}, resp)
}

func (s *StrategySuite) TestRedirectFailureMessagePriority() {
	sc := models.SignContext{SuccessURL: "https://ok", FailURL: "https://fail"}
	tests := []struct {
		name   string
		result *ports.RedirectSignResult
		want   string
	}{
		{"error list first", &ports.RedirectSignResult{ErrorMessages: []string{"a", "b"}, InternalErrorMessage: "internal"}, "a, b"},
		{"internal message next", &ports.RedirectSignResult{InternalErrorMessage: "internal"}, "internal"},
		{"generic last", &ports.RedirectSignResult{}, models.CodeEmptyRedirectURL.DefaultMessage()},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			strategy := NewRedirect(s.sessions, s.redirect, s.opts...)
			s.sessions.EXPECT().Insert(gomock.Any(), gomock.Any(), gomock.Any()).Return(s.sessionID, nil)
			s.redirect.EXPECT().StartRedirectSign(gomock.Any(), gomock.Any()).Return(tt.result, nil)
			s.sessions.EXPECT().MarkFailed(gomock.Any(), s.sessionID, gomock.Any(), gomock.Any()).Return(nil)

			resp, err := strategy.StartSign(s.ctx, s.norwegianBundle(), sc)
			s.Require().NoError(err)
			s.Equal(models.FailedToStart{Code: models.CodeEmptyRedirectURL, Message: tt.want}, resp)
		})
	}
}

func (s *StrategySuite) TestRedirectDanishMethod() {
	strategy := NewRedirect(s.sessions, s.redirect, s.opts...)
	dk := []*quotemodels.Quote{
		s.quote(quotemodels.KindDanishHomeContents, quotemodels.Patch{}),
		s.quote(quotemodels.KindDanishTravel, quotemodels.Patch{}),
	}
	s.Equal(models.SignMethodDanishBankID, strategy.Method(dk))
	s.Equal(models.SignMethodNorwegianBankID, strategy.Method(s.norwegianBundle()))
}

func (s *StrategySuite) TestSimpleSign() {
	strategy := NewSimple(s.sessions, s.simple, s.opts...)

	s.Run("started", func() {
		s.sessions.EXPECT().Insert(gomock.Any(), models.SignMethodSimpleSign, gomock.Any()).Return(s.sessionID, nil)
		s.simple.EXPECT().StartSimpleSign(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := strategy.StartSign(s.ctx, s.norwegianBundle(), models.SignContext{})
		s.Require().NoError(err)
		s.Equal(models.SimpleSignSession{SessionID: s.sessionID}, resp)
	})

	s.Run("provider refusal carries its message", func() {
		s.sessions.EXPECT().Insert(gomock.Any(), models.SignMethodSimpleSign, gomock.Any()).Return(s.sessionID, nil)
		s.simple.EXPECT().StartSimpleSign(gomock.Any(), gomock.Any()).
			Return(integrations.NewError(integrations.ErrorRejected, "member", "member is locked", nil))
		s.sessions.EXPECT().MarkFailed(gomock.Any(), s.sessionID, gomock.Any(), gomock.Any()).Return(nil)

		resp, err := strategy.StartSign(s.ctx, s.norwegianBundle(), models.SignContext{})
		s.Require().NoError(err)
		failed, ok := resp.(models.FailedToStart)
		require.True(s.T(), ok)
		s.Equal(models.CodeSignFailed, failed.Code)
		s.Equal("member is locked", failed.Message)
	})
}
