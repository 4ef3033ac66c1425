package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	dErrors "underwriter/pkg/domain-errors"
)

// DefaultValidity is how long a quote can be signed after it was created.
const DefaultValidity = 30 * 24 * time.Hour

var (
	ErrNotEditable    = dErrors.New(dErrors.CodeInvalidState, "quote can only be changed while incomplete")
	ErrNotCompletable = dErrors.New(dErrors.CodeInvalidState, "quote can only be completed while incomplete")
	ErrNotSignable    = dErrors.New(dErrors.CodeInvalidState, "quote must be quoted before it can be signed")
	ErrAlreadySigned  = dErrors.New(dErrors.CodeInvalidState, "quote is already signed")
	ErrQuoteExpired   = dErrors.New(dErrors.CodeExpired, "quote has expired")
	ErrKindUnknown    = dErrors.New(dErrors.CodeValidation, "unknown quote data kind")
)

// GuidelineBreach is an underwriting guideline the quote data violates.
type GuidelineBreach struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SignProof is what the signing provider handed back when the holder signed.
// Providers that need no extra data leave every field empty.
type SignProof struct {
	ReferenceToken string `json:"referenceToken,omitempty"`
	Signature      string `json:"signature,omitempty"`
	OCSPResponse   string `json:"ocspResponse,omitempty"`
}

// Quote is the priced or to-be-priced offer for one product.
//
// Quotes are values: transitions return a modified copy and leave the
// receiver untouched, so a caller never observes a half-applied change.
type Quote struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	State     State
	Data      Data

	Price    *decimal.Decimal
	Currency string

	AttributedTo         Partner
	InitiatedFrom        Channel
	CurrentInsurer       *string
	MemberID             *string
	OriginatingProductID *uuid.UUID
	StartDate            *time.Time
	Validity             time.Duration

	BreachedGuidelines               []GuidelineBreach
	UnderwritingGuidelinesBypassedBy *string

	SignedAt      *time.Time
	SignProof     *SignProof
	FailureReason string

	// Parked holds variants swapped out by Update, keyed by kind, so that
	// swapping back restores fields the detour did not touch.
	Parked map[DataKind]Data

	// Version increments on every persisted change.
	Version int
}

// NewQuoteParams carries what a creation request supplies.
type NewQuoteParams struct {
	ID                   uuid.UUID
	Kind                 DataKind
	Patch                Patch
	AttributedTo         Partner
	InitiatedFrom        Channel
	CurrentInsurer       *string
	MemberID             *string
	OriginatingProductID *uuid.UUID
	StartDate            *time.Time
	Validity             time.Duration
	Now                  time.Time
}

// NewQuote builds an incomplete quote from whatever the request supplied.
func NewQuote(p NewQuoteParams) (*Quote, error) {
	empty, ok := EmptyData(p.Kind)
	if !ok {
		return nil, ErrKindUnknown
	}
	id := p.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	validity := p.Validity
	if validity <= 0 {
		validity = DefaultValidity
	}
	attributed := p.AttributedTo
	if attributed == "" {
		attributed = PartnerDirect
	}
	return &Quote{
		ID:                   id,
		CreatedAt:            p.Now,
		UpdatedAt:            p.Now,
		State:                StateIncomplete,
		Data:                 ApplyPatch(empty, p.Patch),
		Currency:             p.Kind.Market().Currency(),
		AttributedTo:         attributed,
		InitiatedFrom:        p.InitiatedFrom,
		CurrentInsurer:       p.CurrentInsurer,
		MemberID:             p.MemberID,
		OriginatingProductID: p.OriginatingProductID,
		StartDate:            p.StartDate,
		Validity:             validity,
	}, nil
}

func (q *Quote) Market() Market           { return q.Data.Kind().Market() }
func (q *Quote) ProductType() ProductType { return q.Data.Kind().Product() }

// ValidTo is the last instant the quote can be signed.
func (q *Quote) ValidTo() time.Time {
	return q.CreatedAt.Add(q.Validity)
}

// IsExpired reports whether a quoted offer has outlived its validity.
func (q *Quote) IsExpired(now time.Time) bool {
	return q.State == StateQuoted && now.After(q.ValidTo())
}

// EffectiveState is the state as seen by readers at now.
func (q *Quote) EffectiveState(now time.Time) State {
	if q.IsExpired(now) {
		return StateExpired
	}
	return q.State
}

func (q *Quote) clone() *Quote {
	c := *q
	if q.BreachedGuidelines != nil {
		c.BreachedGuidelines = append([]GuidelineBreach(nil), q.BreachedGuidelines...)
	}
	if q.Parked != nil {
		c.Parked = make(map[DataKind]Data, len(q.Parked))
		for k, v := range q.Parked {
			c.Parked[k] = v
		}
	}
	return &c
}

// Update applies an edit. When the patch names another kind, the current
// payload is parked and the target variant is restored from the parking
// lot (or started empty), then receives the shared fields of the current
// payload before the patch itself.
func (q *Quote) Update(pt Patch, now time.Time) (*Quote, error) {
	if q.State != StateIncomplete {
		return nil, ErrNotEditable
	}
	c := q.clone()
	c.UpdatedAt = now
	c.BreachedGuidelines = nil

	if pt.Kind == "" || pt.Kind == q.Data.Kind() {
		c.Data = ApplyPatch(q.Data, pt)
		return c, nil
	}

	target, ok := c.Parked[pt.Kind]
	if !ok {
		if target, ok = EmptyData(pt.Kind); !ok {
			return nil, ErrKindUnknown
		}
	}
	if c.Parked == nil {
		c.Parked = make(map[DataKind]Data)
	}
	c.Parked[q.Data.Kind()] = q.Data
	delete(c.Parked, pt.Kind)

	c.Data = ApplyPatch(ApplyPatch(target, sharedPatch(q.Data)), pt)
	if q.Data.Kind().Market() != pt.Kind.Market() {
		c.Currency = pt.Kind.Market().Currency()
	}
	return c, nil
}

// WithBreaches records a failed completion attempt.
func (q *Quote) WithBreaches(breaches []GuidelineBreach, now time.Time) *Quote {
	c := q.clone()
	c.BreachedGuidelines = append([]GuidelineBreach(nil), breaches...)
	c.UpdatedAt = now
	return c
}

// BypassGuidelines marks the quote as exempt from underwriting guidelines.
func (q *Quote) BypassGuidelines(by string, now time.Time) (*Quote, error) {
	if q.State != StateIncomplete {
		return nil, ErrNotEditable
	}
	c := q.clone()
	c.UnderwritingGuidelinesBypassedBy = &by
	c.UpdatedAt = now
	return c, nil
}

// Complete moves an incomplete quote to quoted with the given price.
func (q *Quote) Complete(price decimal.Decimal, currency string, now time.Time) (*Quote, error) {
	if q.State != StateIncomplete {
		return nil, ErrNotCompletable
	}
	c := q.clone()
	c.State = StateQuoted
	c.Price = &price
	if currency != "" {
		c.Currency = currency
	}
	c.BreachedGuidelines = nil
	c.UpdatedAt = now
	return c, nil
}

// Sign moves a quoted, unexpired quote to signed.
func (q *Quote) Sign(proof SignProof, now time.Time) (*Quote, error) {
	switch {
	case q.State == StateSigned:
		return nil, ErrAlreadySigned
	case q.State != StateQuoted:
		return nil, ErrNotSignable
	case q.IsExpired(now):
		return nil, ErrQuoteExpired
	}
	c := q.clone()
	c.State = StateSigned
	c.SignedAt = &now
	c.SignProof = &proof
	c.UpdatedAt = now
	return c, nil
}

// Fail moves the quote to the terminal failed state.
func (q *Quote) Fail(reason string, now time.Time) *Quote {
	c := q.clone()
	c.State = StateFailed
	c.FailureReason = reason
	c.UpdatedAt = now
	return c
}
