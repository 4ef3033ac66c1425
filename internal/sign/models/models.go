package models

import (
	"time"

	"github.com/google/uuid"

	quotemodels "underwriter/internal/quote/models"
)

// SignMethod identifies the signing protocol a bundle is routed to.
type SignMethod string

const (
	SignMethodSwedishBankID   SignMethod = "SWEDISH_BANK_ID"
	SignMethodNorwegianBankID SignMethod = "NORWEGIAN_BANK_ID"
	SignMethodDanishBankID    SignMethod = "DANISH_BANK_ID"
	SignMethodSimpleSign      SignMethod = "SIMPLE_SIGN"
)

// SessionStatus is the lifecycle state of a sign session.
type SessionStatus string

const (
	SessionPending   SessionStatus = "PENDING"
	SessionCompleted SessionStatus = "COMPLETED"
	SessionFailed    SessionStatus = "FAILED"
)

// SignSession links a bundle of quotes to one signing attempt. It leaves
// PENDING exactly once.
type SignSession struct {
	ID         uuid.UUID
	Method     SignMethod
	QuoteIDs   []uuid.UUID
	Status     SessionStatus
	Reason     string
	CreatedAt  time.Time
	FinishedAt *time.Time
}

func (s *SignSession) IsTerminal() bool {
	return s.Status != SessionPending
}

// SignContext is the caller-supplied context of a sign attempt.
type SignContext struct {
	MemberID   string
	IPAddress  string
	SuccessURL string
	FailURL    string
}

// StartSignResponse is one of SwedishBankIDSession, RedirectSession,
// SimpleSignSession or FailedToStart.
type StartSignResponse interface {
	isStartSignResponse()
}

type SwedishBankIDSession struct {
	SessionID      uuid.UUID `json:"sessionId"`
	AutoStartToken string    `json:"autoStartToken"`
}

type RedirectSession struct {
	SessionID   uuid.UUID `json:"sessionId"`
	RedirectURL string    `json:"redirectUrl"`
}

type SimpleSignSession struct {
	SessionID uuid.UUID `json:"sessionId"`
}

// FailedToStart is a sign attempt refused before or by the provider.
type FailedToStart struct {
	Code    FailureCode `json:"code"`
	Message string      `json:"message"`
}

func (SwedishBankIDSession) isStartSignResponse() {}
func (RedirectSession) isStartSignResponse()      {}
func (SimpleSignSession) isStartSignResponse()    {}
func (FailedToStart) isStartSignResponse()        {}

// Fail builds a FailedToStart with the default message of code.
func Fail(code FailureCode) FailedToStart {
	return FailedToStart{Code: code, Message: code.DefaultMessage()}
}

// CompletionData is what a provider hands back when a session completes:
// SwedishBankIDCompletion or NoExtraData.
type CompletionData interface {
	Proof() quotemodels.SignProof
}

type SwedishBankIDCompletion struct {
	ReferenceToken string `json:"referenceToken"`
	Signature      string `json:"signature"`
	OCSPResponse   string `json:"ocspResponse"`
}

func (c SwedishBankIDCompletion) Proof() quotemodels.SignProof {
	return quotemodels.SignProof{
		ReferenceToken: c.ReferenceToken,
		Signature:      c.Signature,
		OCSPResponse:   c.OCSPResponse,
	}
}

// NoExtraData is the completion of providers that attach no proof.
type NoExtraData struct{}

func (NoExtraData) Proof() quotemodels.SignProof { return quotemodels.SignProof{} }
