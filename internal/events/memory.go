package events

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryOutbox keeps events in process. Used by the in-memory wiring and by
// tests that assert on emitted events.
type MemoryOutbox struct {
	mu        sync.Mutex
	events    []Event
	published map[uuid.UUID]time.Time
}

func NewMemoryOutbox() *MemoryOutbox {
	return &MemoryOutbox{published: make(map[uuid.UUID]time.Time)}
}

func (o *MemoryOutbox) Append(_ context.Context, evs ...Event) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, evs...)
	return nil
}

func (o *MemoryOutbox) Pending(_ context.Context, limit int) ([]Event, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []Event
	for _, e := range o.events {
		if _, done := o.published[e.ID]; done {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (o *MemoryOutbox) MarkPublished(_ context.Context, ids []uuid.UUID, at time.Time) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, id := range ids {
		o.published[id] = at
	}
	return nil
}

// Events returns every appended event of the given types, or all events
// when no type is given.
func (o *MemoryOutbox) Events(types ...string) []Event {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []Event
	for _, e := range o.events {
		if len(types) == 0 || slices.Contains(types, e.Type) {
			out = append(out, e)
		}
	}
	return out
}
