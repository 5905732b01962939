package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Sai-kurakula/banks-etl/internal/core/domain"
	portsrepo "github.com/Sai-kurakula/banks-etl/internal/core/ports/repositories"
	portssvc "github.com/Sai-kurakula/banks-etl/internal/core/ports/services"
	"github.com/Sai-kurakula/banks-etl/internal/utils"
)

// TransformService converts raw market caps into the target currencies.
//
// Rounding policy: every derived value is rounded to two decimal places with
// banker's rounding (round half to even). This is fixed and deterministic;
// identical inputs always produce identical output.
type TransformService struct {
	rateRepo portsrepo.ExchangeRateReader
	logger   *slog.Logger
}

// NewTransformService creates a new TransformService.
func NewTransformService(rateRepo portsrepo.ExchangeRateReader, logger *slog.Logger) *TransformService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TransformService{rateRepo: rateRepo, logger: logger}
}

var _ portssvc.TransformerSvcFacade = (*TransformService)(nil)

// Transform coerces each record's market cap to a decimal and derives the
// GBP, EUR and INR columns. The rate table must contain every target
// currency before any record is converted, so a failed run never leaves a
// partially converted table behind.
func (s *TransformService) Transform(ctx context.Context, records []domain.BankRecord) ([]domain.EnrichedBankRecord, error) {
	rates, err := s.rateRepo.LoadRates(ctx)
	if err != nil {
		return nil, err
	}
	if err := rates.Require(domain.TargetCurrencies()...); err != nil {
		return nil, err
	}

	gbp, _ := rates.Rate(domain.CurrencyGBP)
	eur, _ := rates.Rate(domain.CurrencyEUR)
	inr, _ := rates.Rate(domain.CurrencyINR)

	enriched := make([]domain.EnrichedBankRecord, 0, len(records))
	for _, rec := range records {
		usd, err := utils.ParseMarketCap(rec.MarketCapUSD)
		if err != nil {
			return nil, fmt.Errorf("bank %q: %w", rec.Name, err)
		}
		enriched = append(enriched, domain.EnrichedBankRecord{
			Name:         rec.Name,
			MarketCapUSD: usd,
			MarketCapGBP: usd.Mul(gbp).RoundBank(2),
			MarketCapEUR: usd.Mul(eur).RoundBank(2),
			MarketCapINR: usd.Mul(inr).RoundBank(2),
		})
	}

	s.logger.Info("transformation complete", slog.Int("rows", len(enriched)))
	return enriched, nil
}
