package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"underwriter/internal/events"
	"underwriter/internal/integrations"
	"underwriter/internal/quote/models"
	"underwriter/internal/quote/ports"
	dErrors "underwriter/pkg/domain-errors"
)

// Completion outcomes, as recorded in metrics.
const (
	outcomeQuoted   = "quoted"
	outcomeBreached = "breached"
	outcomeInvalid  = "invalid"
	outcomeFailed   = "failed"
	outcomeError    = "error"
)

// CompletionResult is the outcome of Complete. Breaches is non-empty when
// the quote stayed incomplete because guidelines were breached; otherwise
// Quote is QUOTED, or FAILED when pricing refused the data.
type CompletionResult struct {
	Quote    *models.Quote
	Breaches []models.GuidelineBreach
}

func (r *CompletionResult) Completed() bool {
	return r.Quote != nil && r.Quote.State == models.StateQuoted
}

// Complete prices an incomplete quote. Breaches are data, not errors: the
// quote stays INCOMPLETE with the breaches recorded, and calling Complete
// again on unchanged data returns the same breaches without another write.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*CompletionResult, error) {
	ctx, span := s.tracer.Start(ctx, "quote.Complete",
		trace.WithAttributes(attribute.String("quote_id", id.String())))
	defer span.End()

	res, outcome, err := s.complete(ctx, id)
	span.SetAttributes(attribute.String("outcome", outcome))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	}
	return res, err
}

func (s *Service) complete(ctx context.Context, id uuid.UUID) (*CompletionResult, string, error) {
	q, err := s.load(ctx, id)
	if err != nil {
		return nil, outcomeError, err
	}
	market := string(q.Market())

	switch q.State {
	case models.StateQuoted:
		return &CompletionResult{Quote: q}, outcomeQuoted, nil
	case models.StateIncomplete:
	default:
		return nil, outcomeInvalid, models.ErrNotCompletable
	}

	if missing := q.Data.MissingFields(); len(missing) > 0 {
		s.metrics.IncrementCompletion(market, outcomeInvalid)
		return nil, outcomeInvalid, dErrors.New(dErrors.CodeValidation,
			"missing required fields: "+strings.Join(missing, ", "))
	}

	if q.UnderwritingGuidelinesBypassedBy != nil {
		s.metrics.IncrementBypass(market)
		s.logger.InfoContext(ctx, "completing quote without underwriting guidelines",
			"quote_id", id,
			"bypassed_by", *q.UnderwritingGuidelinesBypassedBy,
		)
	} else {
		breaches, err := s.guidelines.Evaluate(ctx, q.Data)
		if err != nil {
			s.metrics.IncrementCompletion(market, outcomeError)
			return nil, outcomeError, err
		}
		if len(breaches) > 0 {
			return s.recordBreaches(ctx, q, breaches)
		}
	}

	started := time.Now()
	priced, err := s.pricer.Price(ctx, ports.PriceRequest{
		QuoteID:   q.ID,
		Data:      q.Data,
		StartDate: q.StartDate,
		Partner:   q.AttributedTo,
	})
	s.metrics.ObservePricingLatency(time.Since(started))
	if err != nil {
		return s.pricingFailed(ctx, q, err)
	}

	now := s.now()
	completed, err := q.Complete(priced.Price, priced.Currency, now)
	if err != nil {
		return nil, outcomeError, err
	}
	ev, err := events.New(events.AggregateQuote, id.String(), events.TypeQuoteCompleted, events.QuoteCompleted{
		QuoteID:   id.String(),
		Kind:      string(completed.Data.Kind()),
		Market:    market,
		Price:     priced.Price.StringFixed(2),
		Currency:  completed.Currency,
		MemberID:  deref(completed.MemberID),
		Partner:   string(completed.AttributedTo),
		Completed: now,
	}, now)
	if err != nil {
		return nil, outcomeError, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build event")
	}
	if err := s.save(ctx, completed, ev); err != nil {
		s.metrics.IncrementCompletion(market, outcomeError)
		return nil, outcomeError, err
	}

	s.metrics.IncrementCompletion(market, outcomeQuoted)
	s.logger.InfoContext(ctx, "quote completed",
		"quote_id", id,
		"market", market,
		"price", priced.Price.StringFixed(2),
		"currency", completed.Currency,
	)
	return &CompletionResult{Quote: completed}, outcomeQuoted, nil
}

func (s *Service) recordBreaches(ctx context.Context, q *models.Quote, breaches []models.GuidelineBreach) (*CompletionResult, string, error) {
	market := string(q.Market())
	s.metrics.IncrementCompletion(market, outcomeBreached)

	if slices.Equal(breaches, q.BreachedGuidelines) {
		return &CompletionResult{Quote: q, Breaches: breaches}, outcomeBreached, nil
	}
	updated := q.WithBreaches(breaches, s.now())
	if err := s.save(ctx, updated); err != nil {
		return nil, outcomeError, err
	}
	return &CompletionResult{Quote: updated, Breaches: breaches}, outcomeBreached, nil
}

// pricingFailed fails the quote when pricing refused it outright and
// reports every other failure as temporarily unavailable.
func (s *Service) pricingFailed(ctx context.Context, q *models.Quote, cause error) (*CompletionResult, string, error) {
	market := string(q.Market())
	if integrations.CategoryOf(cause) != integrations.ErrorRejected {
		s.metrics.IncrementCompletion(market, outcomeError)
		s.logger.WarnContext(ctx, "pricing unavailable",
			"quote_id", q.ID,
			"retryable", integrations.IsRetryable(cause),
			"error", cause,
		)
		return nil, outcomeError, dErrors.Wrap(cause, dErrors.CodeUnavailable, "pricing is unavailable, try again later")
	}

	now := s.now()
	reason := "pricing rejected: " + integrations.MessageOf(cause)
	failed := q.Fail(reason, now)
	ev, err := events.New(events.AggregateQuote, q.ID.String(), events.TypeQuoteFailed, events.QuoteFailed{
		QuoteID: q.ID.String(),
		Reason:  reason,
		At:      now,
	}, now)
	if err != nil {
		return nil, outcomeError, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build event")
	}
	if err := s.save(ctx, failed, ev); err != nil {
		return nil, outcomeError, err
	}
	s.metrics.IncrementCompletion(market, outcomeFailed)
	s.logger.WarnContext(ctx, "quote failed on pricing",
		"quote_id", q.ID,
		"reason", reason,
	)
	return &CompletionResult{Quote: failed}, outcomeFailed, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
