package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the quote lifecycle.
type Metrics struct {
	// Breached guidelines by market and breach code
	GuidelineBreaches *prometheus.CounterVec

	// Bypassed guideline evaluations by market
	GuidelineBypasses *prometheus.CounterVec

	// Completion outcomes by market and outcome
	Completions *prometheus.CounterVec

	// Pricing collaborator latency
	PricingLatency prometheus.Histogram
}

// New creates a Metrics instance registered with the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics with reg. Tests pass a fresh registry to
// avoid duplicate registration panics.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		GuidelineBreaches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "underwriter_guideline_breaches_total",
			Help: "Total underwriting guideline breaches by market and code",
		}, []string{"market", "code"}),

		GuidelineBypasses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "underwriter_guideline_bypasses_total",
			Help: "Total completions that skipped underwriting guidelines",
		}, []string{"market"}),

		Completions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "underwriter_quote_completions_total",
			Help: "Total quote completion attempts by market and outcome",
		}, []string{"market", "outcome"}), // outcome: "quoted", "breached", "invalid", "failed", "error"

		PricingLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "underwriter_pricing_duration_seconds",
			Help:    "Duration of pricing collaborator calls",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

func (m *Metrics) IncrementBreach(market, code string) {
	if m != nil {
		m.GuidelineBreaches.WithLabelValues(market, code).Inc()
	}
}

func (m *Metrics) IncrementBypass(market string) {
	if m != nil {
		m.GuidelineBypasses.WithLabelValues(market).Inc()
	}
}

func (m *Metrics) IncrementCompletion(market, outcome string) {
	if m != nil {
		m.Completions.WithLabelValues(market, outcome).Inc()
	}
}

func (m *Metrics) ObservePricingLatency(d time.Duration) {
	if m != nil {
		m.PricingLatency.Observe(d.Seconds())
	}
}
