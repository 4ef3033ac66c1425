package strategy

import (
	"context"

	"underwriter/internal/integrations"
	quotemodels "underwriter/internal/quote/models"
	"underwriter/internal/sign/models"
	"underwriter/internal/sign/ports"
)

const loopbackIP = "127.0.0.1"

// Swedish signs a single Swedish home quote with Swedish BankID.
type Swedish struct {
	base
	signer ports.SwedishSigner
}

func NewSwedish(sessions SessionStore, signer ports.SwedishSigner, opts ...Option) *Swedish {
	return &Swedish{base: newBase(sessions, opts), signer: signer}
}

func (s *Swedish) Method([]*quotemodels.Quote) models.SignMethod {
	return models.SignMethodSwedishBankID
}

func (s *Swedish) StartSign(ctx context.Context, quotes []*quotemodels.Quote, sc models.SignContext) (models.StartSignResponse, error) {
	switching := false
	for _, q := range quotes {
		if q.CurrentInsurer != nil {
			switching = true
		}
	}

	sessionID, err := s.startSession(ctx, models.SignMethodSwedishBankID, quotes)
	if err != nil {
		return nil, err
	}

	ip := sc.IPAddress
	if ip == "" {
		s.logger.WarnContext(ctx, "swedish sign started without ip address",
			"session_id", sessionID,
			"quote_id", quotes[0].ID,
		)
		ip = loopbackIP
	}

	res, err := s.signer.StartSwedishSign(ctx, ports.SwedishSignRequest{
		SessionID:   sessionID,
		MemberID:    memberOf(quotes),
		SSN:         quotes[0].Data.Holder().SSN,
		IPAddress:   ip,
		IsSwitching: switching,
	})
	if err != nil {
		return s.refused(ctx, sessionID, failure(models.CodeSignFailed, integrations.MessageOf(err))), nil
	}
	if res.AutoStartToken == "" {
		return s.refused(ctx, sessionID, failure(models.CodeEmptyAuthToken, res.InternalErrorMessage)), nil
	}

	s.logger.InfoContext(ctx, "swedish bankid sign started",
		"session_id", sessionID,
		"switching", switching,
	)
	return models.SwedishBankIDSession{SessionID: sessionID, AutoStartToken: res.AutoStartToken}, nil
}

// failure uses msg when the provider gave one and the code default otherwise.
func failure(code models.FailureCode, msg string) models.FailedToStart {
	f := models.Fail(code)
	if msg != "" {
		f.Message = msg
	}
	return f
}
