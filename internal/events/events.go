package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event types written to the outbox.
const (
	TypeQuoteCompleted = "quote.completed"
	TypeQuoteSigned    = "quote.signed"
	TypeQuoteFailed    = "quote.failed"
	TypeSignFailed     = "sign_session.failed"
)

// Aggregate types.
const (
	AggregateQuote       = "quote"
	AggregateSignSession = "sign_session"
)

// Event is one outbox entry. Payload is the JSON body published to the
// broker; AggregateID doubles as the partition key.
type Event struct {
	ID            uuid.UUID
	AggregateType string
	AggregateID   string
	Type          string
	Payload       json.RawMessage
	CreatedAt     time.Time
}

// New marshals payload into an event.
func New(aggregateType, aggregateID, eventType string, payload any, now time.Time) (Event, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return Event{
		ID:            uuid.New(),
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		Type:          eventType,
		Payload:       body,
		CreatedAt:     now,
	}, nil
}

// Outbox records events inside the caller's transaction.
type Outbox interface {
	Append(ctx context.Context, events ...Event) error
}

// QuoteCompleted is published once a quote has been priced.
type QuoteCompleted struct {
	QuoteID   string    `json:"quoteId"`
	Kind      string    `json:"kind"`
	Market    string    `json:"market"`
	Price     string    `json:"price"`
	Currency  string    `json:"currency"`
	MemberID  string    `json:"memberId,omitempty"`
	Partner   string    `json:"partner"`
	Completed time.Time `json:"completedAt"`
}

// QuoteSigned is published for every quote in a completed sign session.
type QuoteSigned struct {
	QuoteID   string    `json:"quoteId"`
	SessionID string    `json:"sessionId"`
	MemberID  string    `json:"memberId,omitempty"`
	Kind      string    `json:"kind"`
	SignedAt  time.Time `json:"signedAt"`
}

// QuoteFailed is published when a quote reaches the failed state.
type QuoteFailed struct {
	QuoteID string    `json:"quoteId"`
	Reason  string    `json:"reason"`
	At      time.Time `json:"failedAt"`
}

// SignFailed is published when a provider reports a failed session.
type SignFailed struct {
	SessionID string    `json:"sessionId"`
	QuoteIDs  []string  `json:"quoteIds"`
	Reason    string    `json:"reason"`
	At        time.Time `json:"failedAt"`
}
