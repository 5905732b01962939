package models

// Bank is the persistence-row shape of an enriched bank record. Market caps
// are stored as float64 because both sinks hold them in floating-point
// columns after rounding to two decimal places.
type Bank struct {
	Name         string  `json:"name"`
	MarketCapUSD float64 `json:"mcUSDBillion"`
	MarketCapGBP float64 `json:"mcGBPBillion"`
	MarketCapEUR float64 `json:"mcEURBillion"`
	MarketCapINR float64 `json:"mcINRBillion"`
}
