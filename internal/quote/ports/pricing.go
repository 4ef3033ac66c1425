package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"underwriter/internal/quote/models"
)

// PriceRequest is what the pricing collaborator needs to price one quote.
type PriceRequest struct {
	QuoteID   uuid.UUID
	Data      models.Data
	StartDate *time.Time
	Partner   models.Partner
}

// PriceResult is a priced offer.
type PriceResult struct {
	Price    decimal.Decimal
	Currency string
}

// PricingPort prices completed quote data. Errors carry an
// integrations.ErrorCategory; ErrorRejected means the collaborator refuses
// to price the data at all.
type PricingPort interface {
	Price(ctx context.Context, req PriceRequest) (*PriceResult, error)
}
