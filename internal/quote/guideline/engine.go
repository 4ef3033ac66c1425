package guideline

import (
	"context"
	"log/slog"
	"time"

	"underwriter/internal/quote/metrics"
	"underwriter/internal/quote/models"
	dErrors "underwriter/pkg/domain-errors"
)

// Engine resolves the rule set for a payload and evaluates it.
type Engine struct {
	sets    map[models.DataKind]RuleSet
	now     func() time.Time
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures an Engine.
type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithRuleSet replaces the rule set for one payload kind.
func WithRuleSet(kind models.DataKind, rules RuleSet) Option {
	return func(e *Engine) {
		e.sets[kind] = rules
	}
}

// NewEngine builds an engine with the built-in rule sets. Person rules of
// the market are prepended to every product rule set.
func NewEngine(debt DebtChecker, opts ...Option) *Engine {
	se := swedishPersonRules(debt)
	no := norwegianPersonRules()
	dk := danishPersonRules()

	e := &Engine{
		sets: map[models.DataKind]RuleSet{
			models.KindSwedishApartment:      concat(se, swedishApartmentRules()),
			models.KindSwedishHouse:          concat(se, swedishHouseRules()),
			models.KindNorwegianHomeContents: concat(no, norwegianHomeContentsRules()),
			models.KindNorwegianTravel:       concat(no, norwegianTravelRules()),
			models.KindDanishHomeContents:    concat(dk, danishHomeContentsRules()),
			models.KindDanishAccident:        concat(dk, danishAccidentRules()),
			models.KindDanishTravel:          concat(dk, danishTravelRules()),
		},
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func concat(sets ...RuleSet) RuleSet {
	var out RuleSet
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}

// RuleSet returns the rule set evaluated for kind.
func (e *Engine) RuleSet(kind models.DataKind) (RuleSet, bool) {
	rs, ok := e.sets[kind]
	return rs, ok
}

// Evaluate returns every breach of data's rule set. A non-nil error means
// the data could not be evaluated; it is never a breach.
func (e *Engine) Evaluate(ctx context.Context, data models.Data) ([]models.GuidelineBreach, error) {
	rules, ok := e.sets[data.Kind()]
	if !ok {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "no guidelines for "+string(data.Kind()))
	}

	breaches, err := Evaluate(ctx, rules, Input{Data: data, Now: e.now()})
	if err != nil {
		return nil, err
	}

	market := string(data.Kind().Market())
	for _, b := range breaches {
		e.metrics.IncrementBreach(market, b.Code)
	}
	if len(breaches) > 0 {
		e.logger.InfoContext(ctx, "underwriting guidelines breached",
			"kind", data.Kind(),
			"breaches", len(breaches),
			"data", data,
		)
	}
	return breaches, nil
}
