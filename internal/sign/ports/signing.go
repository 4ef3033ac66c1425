package ports

import (
	"context"

	"github.com/google/uuid"

	quotemodels "underwriter/internal/quote/models"
)

// SwedishSignRequest starts a Swedish BankID signature.
type SwedishSignRequest struct {
	SessionID   uuid.UUID
	MemberID    string
	SSN         string
	IPAddress   string
	IsSwitching bool
}

// SwedishSignResult carries either an auto-start token or the provider's
// explanation of why there is none.
type SwedishSignResult struct {
	AutoStartToken       string
	InternalErrorMessage string
}

// SwedishSigner is the Swedish BankID signing collaborator.
type SwedishSigner interface {
	StartSwedishSign(ctx context.Context, req SwedishSignRequest) (*SwedishSignResult, error)
}

// RedirectSignRequest starts a redirect-based BankID signature.
type RedirectSignRequest struct {
	SessionID  uuid.UUID
	MemberID   string
	SSN        string
	Market     quotemodels.Market
	SuccessURL string
	FailURL    string
}

type RedirectSignResult struct {
	RedirectURL          string
	ErrorMessages        []string
	InternalErrorMessage string
}

// RedirectSigner is the Norwegian and Danish BankID signing collaborator.
type RedirectSigner interface {
	StartRedirectSign(ctx context.Context, req RedirectSignRequest) (*RedirectSignResult, error)
}

type SimpleSignRequest struct {
	SessionID uuid.UUID
	MemberID  string
	SSN       string
	Market    quotemodels.Market
}

// SimpleSigner signs without a BankID round trip. Used outside production.
type SimpleSigner interface {
	StartSimpleSign(ctx context.Context, req SimpleSignRequest) error
}

// SignedMember is reported to the member registry once a bundle is signed.
type SignedMember struct {
	MemberID  string
	SSN       string
	SessionID uuid.UUID
	QuoteIDs  []uuid.UUID
}

// MemberRegistry knows which members already hold a signed contract.
type MemberRegistry interface {
	IsAlreadySigned(ctx context.Context, memberID string) (bool, error)
	MemberSigned(ctx context.Context, member SignedMember) error
}
