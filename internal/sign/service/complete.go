package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"underwriter/internal/events"
	quotemodels "underwriter/internal/quote/models"
	"underwriter/internal/sign/models"
	"underwriter/internal/sign/ports"
	dErrors "underwriter/pkg/domain-errors"
	"underwriter/pkg/platform/sentinel"
)

// Completion outcomes, as recorded in metrics.
const (
	outcomeSigned    = "signed"
	outcomeExpired   = "expired"
	outcomeFailed    = "failed"
	outcomeDuplicate = "duplicate"
	outcomeError     = "error"
)

const expiredReason = "quote expired before signing completed"

// CompletedSignSession signs every quote of the session. Providers may call
// back more than once; a session that is already completed is a no-op.
// If any quote expired in the meantime nothing is signed, the expired quotes
// and the session are failed and a CodeExpired error is returned.
func (s *Service) CompletedSignSession(ctx context.Context, sessionID uuid.UUID, data models.CompletionData) error {
	ctx, span := s.tracer.Start(ctx, "sign.CompletedSignSession",
		trace.WithAttributes(attribute.String("session_id", sessionID.String())))
	defer span.End()

	outcome, err := s.completed(ctx, sessionID, data)
	span.SetAttributes(attribute.String("outcome", outcome))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	}
	s.metrics.IncrementCompletion(outcome)
	return err
}

func (s *Service) completed(ctx context.Context, sessionID uuid.UUID, data models.CompletionData) (string, error) {
	sess, err := s.findSession(ctx, sessionID)
	if err != nil {
		return outcomeError, err
	}
	switch sess.Status {
	case models.SessionCompleted:
		s.logger.InfoContext(ctx, "sign session already completed", "session_id", sessionID)
		return outcomeDuplicate, nil
	case models.SessionFailed:
		return outcomeError, dErrors.New(dErrors.CodeInvalidState, "sign session has already failed")
	}
	if data == nil {
		data = models.NoExtraData{}
	}

	quotes, err := s.loadQuotes(ctx, sess.QuoteIDs)
	if err != nil {
		return outcomeError, err
	}
	now := s.now()

	var expired []*quotemodels.Quote
	for _, q := range quotes {
		if q.IsExpired(now) {
			expired = append(expired, q)
		}
	}
	if len(expired) > 0 {
		return s.expire(ctx, sess, expired, now)
	}

	proof := data.Proof()
	var (
		signed []*quotemodels.Quote
		evs    []events.Event
	)
	for _, q := range quotes {
		if q.State == quotemodels.StateSigned {
			continue
		}
		sq, err := q.Sign(proof, now)
		if err != nil {
			return outcomeError, err
		}
		ev, err := events.New(events.AggregateQuote, q.ID.String(), events.TypeQuoteSigned, events.QuoteSigned{
			QuoteID:   q.ID.String(),
			SessionID: sessionID.String(),
			MemberID:  deref(q.MemberID),
			Kind:      string(q.Data.Kind()),
			SignedAt:  now,
		}, now)
		if err != nil {
			return outcomeError, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build event")
		}
		signed = append(signed, sq)
		evs = append(evs, ev)
	}

	// The session claim runs last so that losing it rolls the quote writes back.
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, q := range signed {
			if err := s.quotes.Update(ctx, q); err != nil {
				return err
			}
		}
		if len(evs) > 0 {
			if err := s.outbox.Append(ctx, evs...); err != nil {
				return err
			}
		}
		return s.sessions.MarkCompleted(ctx, sessionID, now)
	})
	if err != nil {
		return s.settleRace(ctx, sessionID, models.SessionCompleted, err)
	}

	s.notifyMember(ctx, sess, quotes)
	s.logger.InfoContext(ctx, "sign session completed",
		"session_id", sessionID,
		"quote_ids", sess.QuoteIDs,
		"method", sess.Method,
	)
	return outcomeSigned, nil
}

func (s *Service) expire(ctx context.Context, sess *models.SignSession, expired []*quotemodels.Quote, now time.Time) (string, error) {
	evs := make([]events.Event, 0, len(expired)+1)
	failed := make([]*quotemodels.Quote, 0, len(expired))
	for _, q := range expired {
		failed = append(failed, q.Fail(expiredReason, now))
		ev, err := events.New(events.AggregateQuote, q.ID.String(), events.TypeQuoteFailed, events.QuoteFailed{
			QuoteID: q.ID.String(),
			Reason:  expiredReason,
			At:      now,
		}, now)
		if err != nil {
			return outcomeError, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build event")
		}
		evs = append(evs, ev)
	}
	sessionEv, err := s.sessionFailedEvent(sess, string(models.CodeQuoteExpired), now)
	if err != nil {
		return outcomeError, err
	}
	evs = append(evs, sessionEv)

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, q := range failed {
			if err := s.quotes.Update(ctx, q); err != nil {
				return err
			}
		}
		if err := s.outbox.Append(ctx, evs...); err != nil {
			return err
		}
		return s.sessions.MarkFailed(ctx, sess.ID, string(models.CodeQuoteExpired), now)
	})
	if err != nil {
		_, err = s.settleRace(ctx, sess.ID, models.SessionFailed, err)
		if err != nil {
			return outcomeError, err
		}
	}
	s.logger.WarnContext(ctx, "sign session completed after quote expiry",
		"session_id", sess.ID,
		"quote_id", expired[0].ID,
	)
	return outcomeExpired, dErrors.New(dErrors.CodeExpired, expiredReason)
}

// FailedSignSession records that the provider gave up on a session. Quotes
// stay QUOTED and can be signed in a new session. Repeats are no-ops.
func (s *Service) FailedSignSession(ctx context.Context, sessionID uuid.UUID, reason string) error {
	sess, err := s.findSession(ctx, sessionID)
	if err != nil {
		return err
	}
	switch sess.Status {
	case models.SessionFailed:
		return nil
	case models.SessionCompleted:
		return dErrors.New(dErrors.CodeInvalidState, "sign session is already completed")
	}

	now := s.now()
	ev, err := s.sessionFailedEvent(sess, reason, now)
	if err != nil {
		return err
	}
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.outbox.Append(ctx, ev); err != nil {
			return err
		}
		return s.sessions.MarkFailed(ctx, sessionID, reason, now)
	})
	if err != nil {
		_, err = s.settleRace(ctx, sessionID, models.SessionFailed, err)
		return err
	}

	s.metrics.IncrementCompletion(outcomeFailed)
	s.logger.WarnContext(ctx, "sign session failed",
		"session_id", sessionID,
		"reason", reason,
	)
	return nil
}

func (s *Service) sessionFailedEvent(sess *models.SignSession, reason string, now time.Time) (events.Event, error) {
	ids := make([]string, 0, len(sess.QuoteIDs))
	for _, id := range sess.QuoteIDs {
		ids = append(ids, id.String())
	}
	ev, err := events.New(events.AggregateSignSession, sess.ID.String(), events.TypeSignFailed, events.SignFailed{
		SessionID: sess.ID.String(),
		QuoteIDs:  ids,
		Reason:    reason,
		At:        now,
	}, now)
	if err != nil {
		return events.Event{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build event")
	}
	return ev, nil
}

// settleRace handles a failed settle transaction. If a concurrent callback
// already moved the session to want, this one is a duplicate.
func (s *Service) settleRace(ctx context.Context, sessionID uuid.UUID, want models.SessionStatus, cause error) (string, error) {
	if !errors.Is(cause, sentinel.ErrAlreadyUsed) && !errors.Is(cause, sentinel.ErrConflict) {
		if dErrors.HasCode(cause, dErrors.CodeTimeout) {
			return outcomeError, cause
		}
		return outcomeError, dErrors.Wrap(cause, dErrors.CodeInternal, "failed to settle sign session")
	}
	sess, err := s.findSession(ctx, sessionID)
	if err != nil {
		return outcomeError, err
	}
	if sess.Status == want {
		return outcomeDuplicate, nil
	}
	return outcomeError, dErrors.Wrap(cause, dErrors.CodeConflict, "sign session was settled concurrently")
}

// notifyMember tells the member registry who signed. The quotes are already
// signed; a failure here is logged and counted for follow up.
func (s *Service) notifyMember(ctx context.Context, sess *models.SignSession, quotes []*quotemodels.Quote) {
	q := quotes[0]
	err := s.members.MemberSigned(ctx, ports.SignedMember{
		MemberID:  deref(q.MemberID),
		SSN:       q.Data.Holder().SSN,
		SessionID: sess.ID,
		QuoteIDs:  sess.QuoteIDs,
	})
	if err != nil {
		s.metrics.IncrementMemberNotifyFailure()
		s.logger.ErrorContext(ctx, "failed to notify member registry of signing",
			"session_id", sess.ID,
			"error", err,
		)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
