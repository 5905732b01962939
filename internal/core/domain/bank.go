package domain

import "github.com/shopspring/decimal"

// Column names shared by the CSV sink and the database table.
const (
	ColumnName         = "Name"
	ColumnMarketCapUSD = "MC_USD_Billion"
	ColumnMarketCapGBP = "MC_GBP_Billion"
	ColumnMarketCapEUR = "MC_EUR_Billion"
	ColumnMarketCapINR = "MC_INR_Billion"
)

// Columns returns the sink column names in output order.
func Columns() []string {
	return []string{ColumnName, ColumnMarketCapUSD, ColumnMarketCapGBP, ColumnMarketCapEUR, ColumnMarketCapINR}
}

// BankRecord is one extracted table row, before currency conversion.
// MarketCapUSD is kept as the raw cell text; coercion happens in the
// transform stage.
type BankRecord struct {
	Name         string `json:"name"`
	MarketCapUSD string `json:"marketCapUSD"`
}

// EnrichedBankRecord is a bank row with the market cap converted into each
// target currency, rounded to two decimal places.
type EnrichedBankRecord struct {
	Name         string          `json:"name"`
	MarketCapUSD decimal.Decimal `json:"marketCapUSD"`
	MarketCapGBP decimal.Decimal `json:"marketCapGBP"`
	MarketCapEUR decimal.Decimal `json:"marketCapEUR"`
	MarketCapINR decimal.Decimal `json:"marketCapINR"`
}
