package handler

import (
	"strings"

	"github.com/google/uuid"

	"underwriter/internal/sign/models"
	dErrors "underwriter/pkg/domain-errors"
)

const maxBundleSize = 10

// StartSignRequest is the body of POST /sign.
type StartSignRequest struct {
	QuoteIDs   []string `json:"quoteIds"`
	SuccessURL string   `json:"successUrl,omitempty"`
	FailURL    string   `json:"failUrl,omitempty"`

	parsedIDs []uuid.UUID
}

func (r *StartSignRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.QuoteIDs) > maxBundleSize {
		return dErrors.New(dErrors.CodeValidation, "too many quotes in one bundle")
	}
	ids, err := parseIDs(r.QuoteIDs)
	if err != nil {
		return err
	}
	r.parsedIDs = ids
	r.SuccessURL = strings.TrimSpace(r.SuccessURL)
	r.FailURL = strings.TrimSpace(r.FailURL)
	return nil
}

// CompletedSessionRequest is the body of a provider completion callback.
// SwedishBankID is set only by the Swedish BankID provider.
type CompletedSessionRequest struct {
	SwedishBankID *SwedishBankIDProof `json:"swedishBankId,omitempty"`
}

type SwedishBankIDProof struct {
	ReferenceToken string `json:"referenceToken"`
	Signature      string `json:"signature"`
	OCSPResponse   string `json:"ocspResponse"`
}

func (r *CompletedSessionRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.SwedishBankID != nil && strings.TrimSpace(r.SwedishBankID.ReferenceToken) == "" {
		return dErrors.New(dErrors.CodeValidation, "swedishBankId.referenceToken is required")
	}
	return nil
}

func (r *CompletedSessionRequest) completionData() models.CompletionData {
	if r.SwedishBankID == nil {
		return models.NoExtraData{}
	}
	return models.SwedishBankIDCompletion{
		ReferenceToken: r.SwedishBankID.ReferenceToken,
		Signature:      r.SwedishBankID.Signature,
		OCSPResponse:   r.SwedishBankID.OCSPResponse,
	}
}

// FailedSessionRequest is the body of a provider failure callback.
type FailedSessionRequest struct {
	Reason string `json:"reason"`
}

func (r *FailedSessionRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Reason = strings.TrimSpace(r.Reason)
	if r.Reason == "" {
		return dErrors.New(dErrors.CodeValidation, "reason is required")
	}
	if len(r.Reason) > 500 {
		return dErrors.New(dErrors.CodeValidation, "reason must be at most 500 characters")
	}
	return nil
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(strings.TrimSpace(s))
		if err != nil {
			return nil, dErrors.New(dErrors.CodeValidation, "quote ids must be uuids")
		}
		ids = append(ids, id)
	}
	return ids, nil
}
