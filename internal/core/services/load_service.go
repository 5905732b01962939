package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Sai-kurakula/banks-etl/internal/apperrors"
	"github.com/Sai-kurakula/banks-etl/internal/core/domain"
	portsrepo "github.com/Sai-kurakula/banks-etl/internal/core/ports/repositories"
	portssvc "github.com/Sai-kurakula/banks-etl/internal/core/ports/services"
)

// LoadService writes the enriched bank table to both sinks. Both writes are
// full replacements; the CSV and database column sets are identical (no
// index column is emitted).
type LoadService struct {
	logger *slog.Logger
}

// NewLoadService creates a new LoadService.
func NewLoadService(logger *slog.Logger) *LoadService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoadService{logger: logger}
}

var _ portssvc.LoaderSvcFacade = (*LoadService)(nil)

// LoadToCSV writes the table to path. The file is written to a temporary
// sibling first and renamed into place on success, so a failed run never
// leaves a partially written CSV at the destination.
func (s *LoadService) LoadToCSV(ctx context.Context, banks []domain.EnrichedBankRecord, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".banks-*.csv")
	if err != nil {
		return fmt.Errorf("%w: creating temp csv: %v", apperrors.ErrPersistence, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	w := csv.NewWriter(tmp)
	if err := w.Write(domain.Columns()); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: writing csv header: %v", apperrors.ErrPersistence, err)
	}
	for _, bank := range banks {
		row := []string{
			bank.Name,
			bank.MarketCapUSD.String(),
			bank.MarketCapGBP.String(),
			bank.MarketCapEUR.String(),
			bank.MarketCapINR.String(),
		}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("%w: writing csv row for %q: %v", apperrors.ErrPersistence, bank.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: flushing csv: %v", apperrors.ErrPersistence, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: syncing csv: %v", apperrors.ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing csv: %v", apperrors.ErrPersistence, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: renaming csv into place: %v", apperrors.ErrPersistence, err)
	}

	s.logger.Info("table saved to csv", slog.String("path", path), slog.Int("rows", len(banks)))
	return nil
}

// LoadToDB replaces the named database table with the given records.
func (s *LoadService) LoadToDB(ctx context.Context, repo portsrepo.BankWriter, banks []domain.EnrichedBankRecord, tableName string) error {
	if err := repo.ReplaceBanks(ctx, tableName, banks); err != nil {
		return fmt.Errorf("%w: replacing table %s: %v", apperrors.ErrPersistence, tableName, err)
	}
	s.logger.Info("table loaded to database", slog.String("table", tableName), slog.Int("rows", len(banks)))
	return nil
}
