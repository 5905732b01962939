package ratefile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Sai-kurakula/banks-etl/internal/apperrors"
	"github.com/Sai-kurakula/banks-etl/internal/core/domain"
	portsrepo "github.com/Sai-kurakula/banks-etl/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// CSVRateRepository reads the exchange-rate reference from a local CSV file
// with a header of Currency,Rate and one row per currency code.
type CSVRateRepository struct {
	path string
}

// NewCSVRateRepository creates a repository reading rates from path.
func NewCSVRateRepository(path string) *CSVRateRepository {
	return &CSVRateRepository{path: path}
}

var _ portsrepo.ExchangeRateReader = (*CSVRateRepository)(nil)

// LoadRates reads the whole reference file into a rate table. Any problem
// reading or interpreting the file surfaces as ErrMissingRateFile; whether
// required currencies are present is the caller's check, made against the
// returned table.
func (r *CSVRateRepository) LoadRates(ctx context.Context) (domain.ExchangeRateTable, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMissingRateFile, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header of %s: %v", apperrors.ErrMissingRateFile, r.path, err)
	}

	currencyIdx, rateIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case "Currency":
			currencyIdx = i
		case "Rate":
			rateIdx = i
		}
	}
	if currencyIdx < 0 || rateIdx < 0 {
		return nil, fmt.Errorf("%w: %s has no Currency/Rate columns", apperrors.ErrMissingRateFile, r.path)
	}

	rates := make(domain.ExchangeRateTable)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", apperrors.ErrMissingRateFile, r.path, err)
		}

		code := strings.TrimSpace(row[currencyIdx])
		rate, err := decimal.NewFromString(strings.TrimSpace(row[rateIdx]))
		if err != nil {
			return nil, fmt.Errorf("%w: rate for %s in %s is not numeric", apperrors.ErrMissingRateFile, code, r.path)
		}
		rates[code] = rate
	}
	return rates, nil
}
