package strategy

import (
	"context"
	"strings"

	"underwriter/internal/integrations"
	quotemodels "underwriter/internal/quote/models"
	"underwriter/internal/sign/models"
	"underwriter/internal/sign/ports"
)

// Redirect signs Norwegian and Danish bundles through a BankID page the
// member is redirected to.
type Redirect struct {
	base
	signer ports.RedirectSigner
}

func NewRedirect(sessions SessionStore, signer ports.RedirectSigner, opts ...Option) *Redirect {
	return &Redirect{base: newBase(sessions, opts), signer: signer}
}

func (r *Redirect) Method(quotes []*quotemodels.Quote) models.SignMethod {
	if len(quotes) > 0 && quotes[0].Market() == quotemodels.MarketDenmark {
		return models.SignMethodDanishBankID
	}
	return models.SignMethodNorwegianBankID
}

func (r *Redirect) StartSign(ctx context.Context, quotes []*quotemodels.Quote, sc models.SignContext) (models.StartSignResponse, error) {
	if sc.SuccessURL == "" || sc.FailURL == "" {
		return models.Fail(models.CodeTargetURLNotProvided), nil
	}

	sessionID, err := r.startSession(ctx, r.Method(quotes), quotes)
	if err != nil {
		return nil, err
	}

	res, err := r.signer.StartRedirectSign(ctx, ports.RedirectSignRequest{
		SessionID:  sessionID,
		MemberID:   memberOf(quotes),
		SSN:        quotes[0].Data.Holder().SSN,
		Market:     quotes[0].Market(),
		SuccessURL: sc.SuccessURL,
		FailURL:    sc.FailURL,
	})
	if err != nil {
		return r.refused(ctx, sessionID, failure(models.CodeSignFailed, integrations.MessageOf(err))), nil
	}
	if res.RedirectURL == "" {
		msg := strings.Join(res.ErrorMessages, ", ")
		if msg == "" {
			msg = res.InternalErrorMessage
		}
		return r.refused(ctx, sessionID, failure(models.CodeEmptyRedirectURL, msg)), nil
	}

	r.logger.InfoContext(ctx, "redirect bankid sign started",
		"session_id", sessionID,
		"market", quotes[0].Market(),
	)
	return models.RedirectSession{SessionID: sessionID, RedirectURL: res.RedirectURL}, nil
}
