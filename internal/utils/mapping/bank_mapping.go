package mapping

import (
	"github.com/Sai-kurakula/banks-etl/internal/core/domain"
	"github.com/Sai-kurakula/banks-etl/internal/models"
)

// ToModelBank converts a domain EnrichedBankRecord to a model Bank.
func ToModelBank(d domain.EnrichedBankRecord) models.Bank {
	return models.Bank{
		Name:         d.Name,
		MarketCapUSD: d.MarketCapUSD.InexactFloat64(),
		MarketCapGBP: d.MarketCapGBP.InexactFloat64(),
		MarketCapEUR: d.MarketCapEUR.InexactFloat64(),
		MarketCapINR: d.MarketCapINR.InexactFloat64(),
	}
}

// ToModelBankSlice converts a slice of domain records to model Banks,
// preserving order.
func ToModelBankSlice(ds []domain.EnrichedBankRecord) []models.Bank {
	ms := make([]models.Bank, len(ds))
	for i, d := range ds {
		ms[i] = ToModelBank(d)
	}
	return ms
}
