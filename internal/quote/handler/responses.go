package handler

import (
	"time"

	"underwriter/internal/quote/models"
	"underwriter/internal/quote/service"
)

// QuoteResponse is the public representation of a quote.
type QuoteResponse struct {
	ID                   string                   `json:"id"`
	State                models.State             `json:"state"`
	Kind                 models.DataKind          `json:"kind"`
	Market               models.Market            `json:"market"`
	ProductType          models.ProductType       `json:"productType"`
	Data                 models.Data              `json:"data"`
	Price                *string                  `json:"price,omitempty"`
	Currency             string                   `json:"currency"`
	AttributedTo         models.Partner           `json:"attributedTo"`
	InitiatedFrom        models.Channel           `json:"initiatedFrom,omitempty"`
	CurrentInsurer       *string                  `json:"currentInsurer,omitempty"`
	MemberID             *string                  `json:"memberId,omitempty"`
	OriginatingProductID *string                  `json:"originatingProductId,omitempty"`
	StartDate            *string                  `json:"startDate,omitempty"`
	CreatedAt            time.Time                `json:"createdAt"`
	ValidTo              time.Time                `json:"validTo"`
	BreachedGuidelines   []models.GuidelineBreach `json:"breachedUnderwritingGuidelines,omitempty"`
	BypassedBy           *string                  `json:"underwritingGuidelinesBypassedBy,omitempty"`
	SignedAt             *time.Time               `json:"signedAt,omitempty"`
	FailureReason        string                   `json:"failureReason,omitempty"`
}

// CompletionResponse is returned by POST /quotes/{id}/complete.
type CompletionResponse struct {
	Quote              QuoteResponse            `json:"quote"`
	BreachedGuidelines []models.GuidelineBreach `json:"breachedUnderwritingGuidelines,omitempty"`
}

func toQuoteResponse(q *models.Quote) QuoteResponse {
	resp := QuoteResponse{
		ID:                 q.ID.String(),
		State:              q.State,
		Kind:               q.Data.Kind(),
		Market:             q.Market(),
		ProductType:        q.ProductType(),
		Data:               q.Data,
		Currency:           q.Currency,
		AttributedTo:       q.AttributedTo,
		InitiatedFrom:      q.InitiatedFrom,
		CurrentInsurer:     q.CurrentInsurer,
		MemberID:           q.MemberID,
		CreatedAt:          q.CreatedAt,
		ValidTo:            q.ValidTo(),
		BreachedGuidelines: q.BreachedGuidelines,
		BypassedBy:         q.UnderwritingGuidelinesBypassedBy,
		SignedAt:           q.SignedAt,
		FailureReason:      q.FailureReason,
	}
	if q.Price != nil {
		p := q.Price.StringFixed(2)
		resp.Price = &p
	}
	if q.OriginatingProductID != nil {
		id := q.OriginatingProductID.String()
		resp.OriginatingProductID = &id
	}
	if q.StartDate != nil {
		d := q.StartDate.Format(time.DateOnly)
		resp.StartDate = &d
	}
	return resp
}

func toCompletionResponse(res *service.CompletionResult) CompletionResponse {
	return CompletionResponse{
		Quote:              toQuoteResponse(res.Quote),
		BreachedGuidelines: res.Breaches,
	}
}
