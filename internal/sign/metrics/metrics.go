package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for sign sessions.
type Metrics struct {
	// Start attempts by sign method and result code ("started" on success)
	StartAttempts *prometheus.CounterVec

	// Session completions by outcome: "signed", "expired", "failed", "duplicate"
	Completions *prometheus.CounterVec

	// Member registry notifications that failed after signing
	MemberNotifyFailures prometheus.Counter
}

// New creates a Metrics instance registered with the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		StartAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "underwriter_sign_start_attempts_total",
			Help: "Total start sign attempts by method and result",
		}, []string{"method", "result"}),

		Completions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "underwriter_sign_session_completions_total",
			Help: "Total sign session callbacks by outcome",
		}, []string{"outcome"}),

		MemberNotifyFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "underwriter_sign_member_notify_failures_total",
			Help: "Signed members the member registry could not be told about",
		}),
	}
}

func (m *Metrics) IncrementStart(method, result string) {
	if m != nil {
		m.StartAttempts.WithLabelValues(method, result).Inc()
	}
}

func (m *Metrics) IncrementCompletion(outcome string) {
	if m != nil {
		m.Completions.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) IncrementMemberNotifyFailure() {
	if m != nil {
		m.MemberNotifyFailures.Inc()
	}
}
