package repositories

import (
	"context"

	"github.com/Sai-kurakula/banks-etl/internal/core/domain"
)

// ExchangeRateReader defines read access to the exchange-rate reference.
type ExchangeRateReader interface {
	// LoadRates reads the full reference into a rate table. Returns
	// apperrors.ErrMissingRateFile if the reference cannot be read.
	LoadRates(ctx context.Context) (domain.ExchangeRateTable, error)
}
