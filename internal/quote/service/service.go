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
	"underwriter/internal/quote/metrics"
	"underwriter/internal/quote/models"
	"underwriter/internal/quote/ports"
	dErrors "underwriter/pkg/domain-errors"
	"underwriter/pkg/platform/sentinel"
	"underwriter/pkg/platform/tx"
)

// Store persists quotes. Update is an optimistic write: it succeeds only if
// the stored version still equals q.Version, bumps q.Version on success and
// returns sentinel.ErrConflict otherwise.
type Store interface {
	Insert(ctx context.Context, q *models.Quote) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	Update(ctx context.Context, q *models.Quote) error
}

// Evaluator runs the underwriting guidelines for a payload.
type Evaluator interface {
	Evaluate(ctx context.Context, data models.Data) ([]models.GuidelineBreach, error)
}

// Service drives the quote lifecycle from creation to a priced offer.
type Service struct {
	quotes     Store
	pricer     ports.PricingPort
	guidelines Evaluator
	outbox     events.Outbox
	tx         tx.Runner
	validity   time.Duration
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
		s.now = now
	}
}

// WithTxRunner sets the transactional boundary shared by the quote store
// and the outbox.
func WithTxRunner(r tx.Runner) Option {
	return func(s *Service) {
		s.tx = r
	}
}

// WithValidity overrides how long new quotes stay signable.
func WithValidity(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.validity = d
		}
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func New(quotes Store, pricer ports.PricingPort, guidelines Evaluator, outbox events.Outbox, opts ...Option) *Service {
	s := &Service{
		quotes:     quotes,
		pricer:     pricer,
		guidelines: guidelines,
		outbox:     outbox,
		tx:         tx.NoopRunner{},
		validity:   models.DefaultValidity,
		now:        time.Now,
		logger:     slog.Default(),
		tracer:     otel.Tracer("underwriter/quote"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRequest carries what a caller knows when a quote is first created.
// Data.Kind is required; every other field may be filled in later.
type CreateRequest struct {
	Data                 models.Patch
	AttributedTo         models.Partner
	InitiatedFrom        models.Channel
	CurrentInsurer       *string
	MemberID             *string
	OriginatingProductID *uuid.UUID
	StartDate            *time.Time
}

// Create stores a new incomplete quote. Guidelines do not run here.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Quote, error) {
	if req.Data.Kind == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "kind is required")
	}
	q, err := models.NewQuote(models.NewQuoteParams{
		Kind:                 req.Data.Kind,
		Patch:                req.Data,
		AttributedTo:         req.AttributedTo,
		InitiatedFrom:        req.InitiatedFrom,
		CurrentInsurer:       req.CurrentInsurer,
		MemberID:             req.MemberID,
		OriginatingProductID: req.OriginatingProductID,
		StartDate:            req.StartDate,
		Validity:             s.validity,
		Now:                  s.now(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.quotes.Insert(ctx, q); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "quote already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create quote")
	}
	s.logger.InfoContext(ctx, "quote created",
		"quote_id", q.ID,
		"kind", q.Data.Kind(),
		"partner", q.AttributedTo,
	)
	return q, nil
}

// Update edits an incomplete quote, possibly swapping its payload kind.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch models.Patch) (*models.Quote, error) {
	if patch.Kind != "" && !patch.Kind.Valid() {
		return nil, models.ErrKindUnknown
	}
	q, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := q.Update(patch, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, updated); err != nil {
		return nil, err
	}
	if updated.Data.Kind() != q.Data.Kind() {
		s.logger.InfoContext(ctx, "quote kind changed",
			"quote_id", id,
			"from", q.Data.Kind(),
			"to", updated.Data.Kind(),
		)
	}
	return updated, nil
}

// Get returns the quote as readers see it now: a quoted offer past its
// validity is reported as EXPIRED. The returned value is a read view and
// must not be written back.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	q, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	view := *q
	view.State = q.EffectiveState(s.now())
	return &view, nil
}

// Bypass exempts an incomplete quote from the underwriting guidelines.
func (s *Service) Bypass(ctx context.Context, id uuid.UUID, bypassedBy string) (*models.Quote, error) {
	if bypassedBy == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "bypassedBy is required")
	}
	q, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := q.BypassGuidelines(bypassedBy, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, updated); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "underwriting guidelines bypassed",
		"quote_id", id,
		"bypassed_by", bypassedBy,
	)
	return updated, nil
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	q, err := s.quotes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "quote not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load quote")
	}
	return q, nil
}

// save writes q and evs atomically.
func (s *Service) save(ctx context.Context, q *models.Quote, evs ...events.Event) error {
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.quotes.Update(ctx, q); err != nil {
			return err
		}
		if len(evs) == 0 {
			return nil
		}
		return s.outbox.Append(ctx, evs...)
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, "quote was modified concurrently")
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "quote not found")
	case dErrors.HasCode(err, dErrors.CodeTimeout):
		return err
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save quote")
	}
}
