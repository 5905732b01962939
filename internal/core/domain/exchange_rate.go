package domain

import (
	"fmt"

	"github.com/Sai-kurakula/banks-etl/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Target currency codes for the derived market-cap columns.
const (
	CurrencyGBP = "GBP"
	CurrencyEUR = "EUR"
	CurrencyINR = "INR"
)

// TargetCurrencies returns the codes a rate table must provide, in the
// order the derived columns appear in the output.
func TargetCurrencies() []string {
	return []string{CurrencyGBP, CurrencyEUR, CurrencyINR}
}

// ExchangeRateTable maps a currency code to its USD conversion rate.
type ExchangeRateTable map[string]decimal.Decimal

// Rate returns the rate for code, or ErrMissingRate if the code is absent.
func (t ExchangeRateTable) Rate(code string) (decimal.Decimal, error) {
	rate, ok := t[code]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: no rate for %s", apperrors.ErrMissingRate, code)
	}
	return rate, nil
}

// Require verifies that every given code has a rate before any conversion
// starts, so a partial run never produces partially converted records.
func (t ExchangeRateTable) Require(codes ...string) error {
	for _, code := range codes {
		if _, ok := t[code]; !ok {
			return fmt.Errorf("%w: no rate for %s", apperrors.ErrMissingRate, code)
		}
	}
	return nil
}
