package handler

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"underwriter/internal/quote/models"
	"underwriter/internal/quote/service"
	dErrors "underwriter/pkg/domain-errors"
)

// CreateQuoteRequest is the body of POST /quotes.
type CreateQuoteRequest struct {
	Data                 models.Patch `json:"data"`
	AttributedTo         string       `json:"attributedTo,omitempty"`
	InitiatedFrom        string       `json:"initiatedFrom,omitempty"`
	CurrentInsurer       *string      `json:"currentInsurer,omitempty"`
	MemberID             *string      `json:"memberId,omitempty"`
	OriginatingProductID *string      `json:"originatingProductId,omitempty"`
	StartDate            *string      `json:"startDate,omitempty"`

	parsedProductID *uuid.UUID
	parsedStartDate *time.Time
}

func (r *CreateQuoteRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Data.Kind == "" {
		return dErrors.New(dErrors.CodeValidation, "data.kind is required")
	}
	if !r.Data.Kind.Valid() {
		return dErrors.New(dErrors.CodeValidation, "data.kind is not a known quote kind")
	}
	r.AttributedTo = strings.TrimSpace(r.AttributedTo)
	r.InitiatedFrom = strings.TrimSpace(r.InitiatedFrom)

	if r.OriginatingProductID != nil {
		id, err := uuid.Parse(*r.OriginatingProductID)
		if err != nil {
			return dErrors.New(dErrors.CodeValidation, "originatingProductId must be a uuid")
		}
		r.parsedProductID = &id
	}
	start, err := parseDate(r.StartDate)
	if err != nil {
		return err
	}
	r.parsedStartDate = start
	return nil
}

func (r *CreateQuoteRequest) toService() service.CreateRequest {
	return service.CreateRequest{
		Data:                 r.Data,
		AttributedTo:         models.Partner(r.AttributedTo),
		InitiatedFrom:        models.Channel(r.InitiatedFrom),
		CurrentInsurer:       r.CurrentInsurer,
		MemberID:             r.MemberID,
		OriginatingProductID: r.parsedProductID,
		StartDate:            r.parsedStartDate,
	}
}

// UpdateQuoteRequest is the body of PATCH /quotes/{id}.
type UpdateQuoteRequest struct {
	Data models.Patch `json:"data"`
}

func (r *UpdateQuoteRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Data.Kind != "" && !r.Data.Kind.Valid() {
		return dErrors.New(dErrors.CodeValidation, "data.kind is not a known quote kind")
	}
	return nil
}

// BypassRequest is the body of POST /quotes/{id}/bypass.
type BypassRequest struct {
	BypassedBy string `json:"bypassedBy"`
}

func (r *BypassRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.BypassedBy = strings.TrimSpace(r.BypassedBy)
	if r.BypassedBy == "" {
		return dErrors.New(dErrors.CodeValidation, "bypassedBy is required")
	}
	if len(r.BypassedBy) > 200 {
		return dErrors.New(dErrors.CodeValidation, "bypassedBy must be at most 200 characters")
	}
	return nil
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(*s))
	if err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, "startDate must be YYYY-MM-DD")
	}
	return &t, nil
}
