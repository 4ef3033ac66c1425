// Package strategy routes a validated bundle to the signing protocol of its
// market and starts the provider side of the session.
package strategy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	quotemodels "underwriter/internal/quote/models"
	"underwriter/internal/sign/models"
)

// SessionStore is the part of the sign-session store strategies need.
type SessionStore interface {
	Insert(ctx context.Context, method models.SignMethod, quoteIDs []uuid.UUID) (uuid.UUID, error)
	MarkFailed(ctx context.Context, id uuid.UUID, reason string, at time.Time) error
}

// Strategy starts signing for a bundle that already passed validation.
// Refusals come back as models.FailedToStart; the error return is reserved
// for infrastructure failures such as the session store being down.
type Strategy interface {
	Method(quotes []*quotemodels.Quote) models.SignMethod
	StartSign(ctx context.Context, quotes []*quotemodels.Quote, sc models.SignContext) (models.StartSignResponse, error)
}

// Registry maps quotes to strategies. Built once at process start.
type Registry struct {
	swedish           Strategy
	redirect          Strategy
	simple            Strategy
	simpleSignEnabled bool
}

// NewRegistry wires the strategies. With simpleSignEnabled Norwegian and
// Danish bundles skip BankID.
func NewRegistry(swedish, redirect, simple Strategy, simpleSignEnabled bool) *Registry {
	return &Registry{
		swedish:           swedish,
		redirect:          redirect,
		simple:            simple,
		simpleSignEnabled: simpleSignEnabled,
	}
}

func (r *Registry) forQuote(q *quotemodels.Quote) Strategy {
	if q.Market() == quotemodels.MarketSweden {
		return r.swedish
	}
	if r.simpleSignEnabled {
		return r.simple
	}
	return r.redirect
}

// For returns the single strategy serving quotes. A bundle spanning more
// than one strategy cannot pass validation, so For panics on it.
func (r *Registry) For(quotes []*quotemodels.Quote) Strategy {
	if len(quotes) == 0 {
		panic("strategy: no quotes to resolve")
	}
	s := r.forQuote(quotes[0])
	for _, q := range quotes[1:] {
		if r.forQuote(q) != s {
			panic(fmt.Sprintf("strategy: bundle resolves to more than one strategy (quotes %s and %s)", quotes[0].ID, q.ID))
		}
	}
	return s
}

type base struct {
	sessions SessionStore
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a strategy.
type Option func(*base)

func WithLogger(logger *slog.Logger) Option {
	return func(b *base) {
		b.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(b *base) {
		if now != nil {
			b.now = now
		}
	}
}

func newBase(sessions SessionStore, opts []Option) base {
	b := base{
		sessions: sessions,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b *base) startSession(ctx context.Context, method models.SignMethod, quotes []*quotemodels.Quote) (uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(quotes))
	for _, q := range quotes {
		ids = append(ids, q.ID)
	}
	id, err := b.sessions.Insert(ctx, method, ids)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert sign session: %w", err)
	}
	return id, nil
}

// refused marks the session failed and returns the refusal. The session
// outcome is best effort; the refusal is what the caller acts on.
func (b *base) refused(ctx context.Context, sessionID uuid.UUID, f models.FailedToStart) models.StartSignResponse {
	if err := b.sessions.MarkFailed(ctx, sessionID, string(f.Code)+": "+f.Message, b.now()); err != nil {
		b.logger.WarnContext(ctx, "failed to mark sign session failed",
			"session_id", sessionID,
			"error", err,
		)
	}
	b.logger.WarnContext(ctx, "sign session refused by provider",
		"session_id", sessionID,
		"code", f.Code,
	)
	return f
}

func memberOf(quotes []*quotemodels.Quote) string {
	if quotes[0].MemberID == nil {
		return ""
	}
	return *quotes[0].MemberID
}
