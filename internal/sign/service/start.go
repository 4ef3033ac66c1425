package service

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	quotemodels "underwriter/internal/quote/models"
	"underwriter/internal/sign/bundle"
	"underwriter/internal/sign/models"
	dErrors "underwriter/pkg/domain-errors"
)

const resultStarted = "started"

// StartSignRequest asks to sign QuoteIDs as one bundle.
type StartSignRequest struct {
	QuoteIDs []uuid.UUID
	Context  models.SignContext
}

// StartSign validates the bundle and hands it to its strategy. Refusals are
// returned as models.FailedToStart with a nil error; errors are reserved for
// unknown quotes and infrastructure failures.
func (s *Service) StartSign(ctx context.Context, req StartSignRequest) (models.StartSignResponse, error) {
	ctx, span := s.tracer.Start(ctx, "sign.StartSign",
		trace.WithAttributes(attribute.Int("quote_count", len(req.QuoteIDs))))
	defer span.End()

	resp, method, err := s.startSign(ctx, req)
	result := resultStarted
	switch {
	case err != nil:
		result = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	default:
		if f, ok := resp.(models.FailedToStart); ok {
			result = string(f.Code)
		}
	}
	span.SetAttributes(attribute.String("result", result), attribute.String("method", string(method)))
	s.metrics.IncrementStart(string(method), result)
	return resp, err
}

func (s *Service) startSign(ctx context.Context, req StartSignRequest) (models.StartSignResponse, models.SignMethod, error) {
	if len(req.QuoteIDs) == 0 {
		return models.Fail(models.CodeEmptyListOfQuotes), "", nil
	}
	quotes, err := s.loadQuotes(ctx, req.QuoteIDs)
	if err != nil {
		return nil, "", err
	}

	if refusal, err := s.checkMember(ctx, quotes, req.Context.MemberID); err != nil || refusal != nil {
		return refusal, "", err
	}
	if refusal := s.checkSignable(ctx, quotes); refusal != nil {
		return refusal, "", nil
	}
	if !personalInfoMatches(quotes) {
		s.refuse(ctx, quotes, models.CodePersonalInfoNotMatching)
		return models.Fail(models.CodePersonalInfoNotMatching), "", nil
	}
	if refusal := bundle.Validate(quotes); refusal != nil {
		s.refuse(ctx, quotes, refusal.Code)
		return *refusal, "", nil
	}

	strat := s.strategies.For(quotes)
	method := strat.Method(quotes)
	resp, err := strat.StartSign(ctx, quotes, req.Context)
	if err != nil {
		return nil, method, dErrors.Wrap(err, dErrors.CodeInternal, "failed to start sign session")
	}
	if _, failed := resp.(models.FailedToStart); !failed {
		s.logger.InfoContext(ctx, "sign session started",
			"method", method,
			"quote_ids", req.QuoteIDs,
		)
	}
	return resp, method, nil
}

func (s *Service) checkMember(ctx context.Context, quotes []*quotemodels.Quote, memberID string) (models.StartSignResponse, error) {
	for _, q := range quotes {
		if q.MemberID == nil {
			s.refuse(ctx, quotes, models.CodeNoMemberIDOnQuote)
			return models.Fail(models.CodeNoMemberIDOnQuote), nil
		}
		if *q.MemberID != memberID {
			s.refuse(ctx, quotes, models.CodeDifferentMemberID)
			return models.Fail(models.CodeDifferentMemberID), nil
		}
	}
	signed, err := s.members.IsAlreadySigned(ctx, memberID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "member service is unavailable")
	}
	if signed {
		s.refuse(ctx, quotes, models.CodeMemberAlreadySigned)
		return models.Fail(models.CodeMemberAlreadySigned), nil
	}
	return nil, nil
}

func (s *Service) checkSignable(ctx context.Context, quotes []*quotemodels.Quote) models.StartSignResponse {
	now := s.now()
	for _, q := range quotes {
		var code models.FailureCode
		switch q.EffectiveState(now) {
		case quotemodels.StateQuoted:
			continue
		case quotemodels.StateExpired:
			code = models.CodeQuoteExpired
		case quotemodels.StateSigned:
			code = models.CodeMemberHasExistingInsurance
		default:
			code = models.CodeQuoteNotSignable
		}
		s.refuse(ctx, quotes, code)
		return models.Fail(code)
	}
	return nil
}

func (s *Service) refuse(ctx context.Context, quotes []*quotemodels.Quote, code models.FailureCode) {
	s.logger.WarnContext(ctx, "sign refused",
		"code", code,
		"bundle", bundle.Describe(quotes),
		"quote_id", quotes[0].ID,
	)
}

// personalInfoMatches requires the holder to be the same person on every
// quote of the bundle.
func personalInfoMatches(quotes []*quotemodels.Quote) bool {
	first := quotes[0].Data.Holder()
	for _, q := range quotes[1:] {
		if !first.SamePerson(q.Data.Holder()) {
			return false
		}
	}
	return true
}
