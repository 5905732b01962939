package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Sai-kurakula/banks-etl/internal/core/domain"
	portsrepo "github.com/Sai-kurakula/banks-etl/internal/core/ports/repositories"
	portssvc "github.com/Sai-kurakula/banks-etl/internal/core/ports/services"
)

// QueryRunnerService executes ad-hoc read queries against the persisted
// table. No planning or caching; it is a pass-through to the engine.
type QueryRunnerService struct {
	querier portsrepo.BankQuerier
	logger  *slog.Logger
}

// NewQueryRunnerService creates a new QueryRunnerService.
func NewQueryRunnerService(querier portsrepo.BankQuerier, logger *slog.Logger) *QueryRunnerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &QueryRunnerService{querier: querier, logger: logger}
}

var _ portssvc.QueryRunnerSvcFacade = (*QueryRunnerService)(nil)

// Run executes query and returns its result.
func (s *QueryRunnerService) Run(ctx context.Context, query string) (*domain.QueryResult, error) {
	result, err := s.querier.RunQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("running query %q: %w", query, err)
	}
	s.logger.Info("query executed", slog.String("query", query), slog.Int("rows", len(result.Rows)))
	return result, nil
}
