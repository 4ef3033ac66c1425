package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"underwriter/internal/events"
	quotemodels "underwriter/internal/quote/models"
	"underwriter/internal/sign/bundle"
	"underwriter/internal/sign/metrics"
	"underwriter/internal/sign/models"
	"underwriter/internal/sign/ports"
	"underwriter/internal/sign/strategy"
	dErrors "underwriter/pkg/domain-errors"
	"underwriter/pkg/platform/sentinel"
	"underwriter/pkg/platform/tx"
)

// QuoteStore is the part of the quote store signing needs. FindByIDs keeps
// the requested order and returns sentinel.ErrNotFound if any id is unknown.
type QuoteStore interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*quotemodels.Quote, error)
	Update(ctx context.Context, q *quotemodels.Quote) error
}

// SessionStore reads and settles sign sessions. Strategies insert them.
type SessionStore interface {
	Find(ctx context.Context, id uuid.UUID) (*models.SignSession, error)
	MarkCompleted(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string, at time.Time) error
}

// Strategies resolves the strategy of a validated bundle.
type Strategies interface {
	For(quotes []*quotemodels.Quote) strategy.Strategy
}

// Service starts and settles sign sessions for bundles of quoted quotes.
type Service struct {
	quotes     QuoteStore
	sessions   SessionStore
	strategies Strategies
	members    ports.MemberRegistry
	outbox     events.Outbox
	tx         tx.Runner
	now        func() time.Time
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTxRunner makes quote updates, outbox writes and the session claim
// commit together when the stores share the database.
func WithTxRunner(r tx.Runner) Option {
	return func(s *Service) {
		if r != nil {
			s.tx = r
		}
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

func New(quotes QuoteStore, sessions SessionStore, strategies Strategies, members ports.MemberRegistry, outbox events.Outbox, opts ...Option) *Service {
	s := &Service{
		quotes:     quotes,
		sessions:   sessions,
		strategies: strategies,
		members:    members,
		outbox:     outbox,
		tx:         tx.NoopRunner{},
		now:        time.Now,
		logger:     slog.Default(),
		tracer:     otel.Tracer("underwriter/sign"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignMethodFor reports how a bundle would be signed without starting a
// session. A bundle that cannot be signed together is a validation error.
func (s *Service) SignMethodFor(ctx context.Context, quoteIDs []uuid.UUID) (models.SignMethod, error) {
	if len(quoteIDs) == 0 {
		return "", dErrors.New(dErrors.CodeValidation, "at least one quote id is required")
	}
	quotes, err := s.loadQuotes(ctx, quoteIDs)
	if err != nil {
		return "", err
	}
	if refusal := bundle.Validate(quotes); refusal != nil {
		return "", dErrors.New(dErrors.CodeValidation, string(refusal.Code)+": "+refusal.Message)
	}
	return s.strategies.For(quotes).Method(quotes), nil
}

func (s *Service) loadQuotes(ctx context.Context, ids []uuid.UUID) ([]*quotemodels.Quote, error) {
	quotes, err := s.quotes.FindByIDs(ctx, ids)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "quote not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load quotes")
	}
	return quotes, nil
}

func (s *Service) findSession(ctx context.Context, id uuid.UUID) (*models.SignSession, error) {
	sess, err := s.sessions.Find(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "sign session not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load sign session")
	}
	return sess, nil
}
