package utils

import (
	"fmt"
	"strings"

	"github.com/Sai-kurakula/banks-etl/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ParseMarketCap coerces a raw market-cap cell value to a decimal. The
// source cell may carry surrounding whitespace, a leading dollar sign and
// thousands separators; anything else non-numeric is a fatal conversion
// error.
func ParseMarketCap(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is not numeric", apperrors.ErrValueConversion, raw)
	}
	return value, nil
}
