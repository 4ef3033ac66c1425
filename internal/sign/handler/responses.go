package handler

import (
	"net/http"

	"underwriter/internal/sign/models"
)

// Response types of POST /sign.
const (
	typeSwedishBankID = "SWEDISH_BANK_ID_SESSION"
	typeRedirect      = "REDIRECT_SESSION"
	typeSimpleSign    = "SIMPLE_SIGN_SESSION"
	typeFailed        = "FAILED_TO_START"
)

// StartSignResponse flattens the start sign outcome into one object tagged
// by Type.
type StartSignResponse struct {
	Type           string `json:"type"`
	SessionID      string `json:"sessionId,omitempty"`
	AutoStartToken string `json:"autoStartToken,omitempty"`
	RedirectURL    string `json:"redirectUrl,omitempty"`
	ErrorCode      string `json:"errorCode,omitempty"`
	ErrorMessage   string `json:"errorMessage,omitempty"`
}

type SignMethodResponse struct {
	Method models.SignMethod `json:"method"`
}

// toStartSignResponse returns the body and status for resp. Refusals are
// answered with 422.
func toStartSignResponse(resp models.StartSignResponse) (int, StartSignResponse) {
	switch r := resp.(type) {
	case models.SwedishBankIDSession:
		return http.StatusOK, StartSignResponse{
			Type:           typeSwedishBankID,
			SessionID:      r.SessionID.String(),
			AutoStartToken: r.AutoStartToken,
		}
	case models.RedirectSession:
		return http.StatusOK, StartSignResponse{
			Type:        typeRedirect,
			SessionID:   r.SessionID.String(),
			RedirectURL: r.RedirectURL,
		}
	case models.SimpleSignSession:
		return http.StatusOK, StartSignResponse{
			Type:      typeSimpleSign,
			SessionID: r.SessionID.String(),
		}
	case models.FailedToStart:
		return http.StatusUnprocessableEntity, StartSignResponse{
			Type:         typeFailed,
			ErrorCode:    string(r.Code),
			ErrorMessage: r.Message,
		}
	default:
		panic("unknown start sign response")
	}
}
