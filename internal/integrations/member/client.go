// Package member is the HTTP client for the member service, which fronts
// BankID signing, the member registry and the credit bureau debt check.
package member

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"underwriter/internal/integrations"
	quotemodels "underwriter/internal/quote/models"
	"underwriter/internal/sign/ports"
)

const name = "member"

type Client struct {
	http *integrations.Client
}

func New(baseURL string, timeout time.Duration, opts ...integrations.ClientOption) *Client {
	return &Client{http: integrations.NewClient(name, baseURL, timeout, opts...)}
}

type swedishSignRequest struct {
	SessionID   string `json:"sessionId"`
	MemberID    string `json:"memberId"`
	SSN         string `json:"ssn"`
	IPAddress   string `json:"ipAddress"`
	IsSwitching bool   `json:"isSwitching"`
}

type swedishSignResponse struct {
	AutoStartToken       string `json:"autoStartToken"`
	InternalErrorMessage string `json:"internalErrorMessage"`
}

func (c *Client) StartSwedishSign(ctx context.Context, req ports.SwedishSignRequest) (*ports.SwedishSignResult, error) {
	var out swedishSignResponse
	err := c.http.Do(ctx, http.MethodPost, "/v1/sign/swedish-bankid", swedishSignRequest{
		SessionID:   req.SessionID.String(),
		MemberID:    req.MemberID,
		SSN:         req.SSN,
		IPAddress:   req.IPAddress,
		IsSwitching: req.IsSwitching,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &ports.SwedishSignResult{
		AutoStartToken:       out.AutoStartToken,
		InternalErrorMessage: out.InternalErrorMessage,
	}, nil
}

type redirectSignRequest struct {
	SessionID  string `json:"sessionId"`
	MemberID   string `json:"memberId"`
	SSN        string `json:"ssn"`
	Market     string `json:"market"`
	SuccessURL string `json:"successUrl"`
	FailURL    string `json:"failUrl"`
}

type redirectSignResponse struct {
	RedirectURL          string   `json:"redirectUrl"`
	ErrorMessages        []string `json:"errorMessages"`
	InternalErrorMessage string   `json:"internalErrorMessage"`
}

func (c *Client) StartRedirectSign(ctx context.Context, req ports.RedirectSignRequest) (*ports.RedirectSignResult, error) {
	var out redirectSignResponse
	err := c.http.Do(ctx, http.MethodPost, "/v1/sign/redirect-bankid", redirectSignRequest{
		SessionID:  req.SessionID.String(),
		MemberID:   req.MemberID,
		SSN:        req.SSN,
		Market:     string(req.Market),
		SuccessURL: req.SuccessURL,
		FailURL:    req.FailURL,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &ports.RedirectSignResult{
		RedirectURL:          out.RedirectURL,
		ErrorMessages:        out.ErrorMessages,
		InternalErrorMessage: out.InternalErrorMessage,
	}, nil
}

type simpleSignRequest struct {
	SessionID string `json:"sessionId"`
	MemberID  string `json:"memberId"`
	SSN       string `json:"ssn"`
	Market    string `json:"market"`
}

func (c *Client) StartSimpleSign(ctx context.Context, req ports.SimpleSignRequest) error {
	return c.http.Do(ctx, http.MethodPost, "/v1/sign/simple", simpleSignRequest{
		SessionID: req.SessionID.String(),
		MemberID:  req.MemberID,
		SSN:       req.SSN,
		Market:    string(req.Market),
	}, nil)
}

type signedStatus struct {
	Signed bool `json:"signed"`
}

func (c *Client) IsAlreadySigned(ctx context.Context, memberID string) (bool, error) {
	var out signedStatus
	path := "/v1/members/" + url.PathEscape(memberID) + "/signed"
	if err := c.http.Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		if integrations.CategoryOf(err) == integrations.ErrorNotFound {
			return false, nil
		}
		return false, err
	}
	return out.Signed, nil
}

type memberSignedRequest struct {
	SSN       string   `json:"ssn"`
	SessionID string   `json:"sessionId"`
	QuoteIDs  []string `json:"quoteIds"`
}

func (c *Client) MemberSigned(ctx context.Context, m ports.SignedMember) error {
	ids := make([]string, len(m.QuoteIDs))
	for i, id := range m.QuoteIDs {
		ids[i] = id.String()
	}
	path := "/v1/members/" + url.PathEscape(m.MemberID) + "/signed"
	return c.http.Do(ctx, http.MethodPost, path, memberSignedRequest{
		SSN:       m.SSN,
		SessionID: m.SessionID.String(),
		QuoteIDs:  ids,
	}, nil)
}

type debtCheckRequest struct {
	SSN string `json:"ssn"`
}

type debtCheckResponse struct {
	Reasons []string `json:"reasons"`
}

// Check runs the credit bureau debt check. An empty result means the
// person passed.
func (c *Client) Check(ctx context.Context, p quotemodels.Person) ([]string, error) {
	var out debtCheckResponse
	err := c.http.Do(ctx, http.MethodPost, "/v1/debt-checks", debtCheckRequest{SSN: p.SSN}, &out)
	if err != nil {
		return nil, err
	}
	return out.Reasons, nil
}
