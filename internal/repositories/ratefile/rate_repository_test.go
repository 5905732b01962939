package ratefile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Sai-kurakula/banks-etl/internal/apperrors"
	"github.com/Sai-kurakula/banks-etl/internal/core/domain"
	"github.com/Sai-kurakula/banks-etl/internal/repositories/ratefile"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRateFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "exchange_rate.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRates_Success(t *testing.T) {
	path := writeRateFile(t, "Currency,Rate\nGBP,0.8\nEUR,0.93\nINR,83.0\n")

	rates, err := ratefile.NewCSVRateRepository(path).LoadRates(context.Background())

	require.NoError(t, err)
	require.NoError(t, rates.Require(domain.TargetCurrencies()...))
	gbp, err := rates.Rate(domain.CurrencyGBP)
	require.NoError(t, err)
	assert.True(t, gbp.Equal(decimal.RequireFromString("0.8")))
}

func TestLoadRates_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.csv")

	_, err := ratefile.NewCSVRateRepository(path).LoadRates(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMissingRateFile)
}

func TestLoadRates_BadHeader(t *testing.T) {
	path := writeRateFile(t, "Code,Value\nGBP,0.8\n")

	_, err := ratefile.NewCSVRateRepository(path).LoadRates(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMissingRateFile)
}

func TestLoadRates_NonNumericRate(t *testing.T) {
	path := writeRateFile(t, "Currency,Rate\nGBP,zero point eight\n")

	_, err := ratefile.NewCSVRateRepository(path).LoadRates(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMissingRateFile)
}

func TestLoadRates_MissingRequiredCurrency(t *testing.T) {
	path := writeRateFile(t, "Currency,Rate\nGBP,0.8\nEUR,0.93\n")

	rates, err := ratefile.NewCSVRateRepository(path).LoadRates(context.Background())
	require.NoError(t, err)

	err = rates.Require(domain.TargetCurrencies()...)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMissingRate)
}
