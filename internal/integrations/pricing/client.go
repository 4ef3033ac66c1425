// Package pricing is the HTTP client for the pricing collaborator.
package pricing

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"underwriter/internal/integrations"
	"underwriter/internal/quote/models"
	"underwriter/internal/quote/ports"
)

const name = "pricing"

type Client struct {
	http *integrations.Client
}

func New(baseURL string, timeout time.Duration, opts ...integrations.ClientOption) *Client {
	return &Client{http: integrations.NewClient(name, baseURL, timeout, opts...)}
}

type priceRequest struct {
	QuoteID   string          `json:"quoteId"`
	Data      json.RawMessage `json:"data"`
	StartDate string          `json:"startDate,omitempty"`
	Partner   string          `json:"partner"`
}

type priceResponse struct {
	Price    *decimal.Decimal `json:"price"`
	Currency string           `json:"currency"`
}

func (c *Client) Price(ctx context.Context, req ports.PriceRequest) (*ports.PriceResult, error) {
	data, err := models.MarshalData(req.Data)
	if err != nil {
		return nil, integrations.NewError(integrations.ErrorInternal, name, "encode quote data", err)
	}
	body := priceRequest{
		QuoteID: req.QuoteID.String(),
		Data:    data,
		Partner: string(req.Partner),
	}
	if req.StartDate != nil {
		body.StartDate = req.StartDate.Format(time.DateOnly)
	}

	var out priceResponse
	if err := c.http.Do(ctx, http.MethodPost, "/v1/prices", body, &out); err != nil {
		return nil, err
	}
	if out.Price == nil || out.Price.IsNegative() {
		return nil, integrations.NewError(integrations.ErrorBadData, name, "missing or negative price", nil)
	}
	currency := out.Currency
	if currency == "" {
		currency = req.Data.Kind().Market().Currency()
	}
	return &ports.PriceResult{Price: *out.Price, Currency: currency}, nil
}
