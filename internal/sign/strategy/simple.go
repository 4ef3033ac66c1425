package strategy

import (
	"context"

	"underwriter/internal/integrations"
	quotemodels "underwriter/internal/quote/models"
	"underwriter/internal/sign/models"
	"underwriter/internal/sign/ports"
)

// Simple signs without BankID. Enabled by configuration outside production.
type Simple struct {
	base
	signer ports.SimpleSigner
}

func NewSimple(sessions SessionStore, signer ports.SimpleSigner, opts ...Option) *Simple {
	return &Simple{base: newBase(sessions, opts), signer: signer}
}

func (s *Simple) Method([]*quotemodels.Quote) models.SignMethod {
	return models.SignMethodSimpleSign
}

func (s *Simple) StartSign(ctx context.Context, quotes []*quotemodels.Quote, _ models.SignContext) (models.StartSignResponse, error) {
	sessionID, err := s.startSession(ctx, models.SignMethodSimpleSign, quotes)
	if err != nil {
		return nil, err
	}
	err = s.signer.StartSimpleSign(ctx, ports.SimpleSignRequest{
		SessionID: sessionID,
		MemberID:  memberOf(quotes),
		SSN:       quotes[0].Data.Holder().SSN,
		Market:    quotes[0].Market(),
	})
	if err != nil {
		return s.refused(ctx, sessionID, failure(models.CodeSignFailed, integrations.MessageOf(err))), nil
	}
	return models.SimpleSignSession{SessionID: sessionID}, nil
}
