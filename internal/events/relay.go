package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Source is where the relay reads unpublished events from.
type Source interface {
	Pending(ctx context.Context, limit int) ([]Event, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
}

// Publisher delivers events to the broker.
type Publisher interface {
	Publish(ctx context.Context, evs []Event) error
}

// Relay drains the outbox into the broker. Delivery is at least once: an
// event is marked published only after the broker acknowledged it.
type Relay struct {
	source    Source
	publisher Publisher
	interval  time.Duration
	batchSize int
	now       func() time.Time
	logger    *slog.Logger
}

type RelayOption func(*Relay)

func WithInterval(d time.Duration) RelayOption {
	return func(r *Relay) {
		if d > 0 {
			r.interval = d
		}
	}
}

func WithBatchSize(n int) RelayOption {
	return func(r *Relay) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

func WithRelayLogger(logger *slog.Logger) RelayOption {
	return func(r *Relay) {
		r.logger = logger
	}
}

func WithRelayClock(now func() time.Time) RelayOption {
	return func(r *Relay) {
		r.now = now
	}
}

func NewRelay(source Source, publisher Publisher, opts ...RelayOption) *Relay {
	r := &Relay{
		source:    source,
		publisher: publisher,
		interval:  time.Second,
		batchSize: 100,
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run polls until ctx is cancelled. Publish failures are logged and the
// batch is retried on the next tick.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := r.Flush(ctx); err != nil && ctx.Err() == nil {
				r.logger.WarnContext(ctx, "outbox relay flush failed", "error", err)
			}
		}
	}
}

// Flush publishes one batch and returns how many events went out.
func (r *Relay) Flush(ctx context.Context) (int, error) {
	pending, err := r.source.Pending(ctx, r.batchSize)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}
	if err := r.publisher.Publish(ctx, pending); err != nil {
		return 0, err
	}
	ids := make([]uuid.UUID, len(pending))
	for i, e := range pending {
		ids[i] = e.ID
	}
	if err := r.source.MarkPublished(ctx, ids, r.now()); err != nil {
		return 0, err
	}
	r.logger.DebugContext(ctx, "outbox events published", "count", len(pending))
	return len(pending), nil
}
