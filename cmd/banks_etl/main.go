package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/Sai-kurakula/banks-etl/internal/adapters/web"
	portsrepo "github.com/Sai-kurakula/banks-etl/internal/core/ports/repositories"
	"github.com/Sai-kurakula/banks-etl/internal/core/services"
	"github.com/Sai-kurakula/banks-etl/internal/platform/auditlog"
	"github.com/Sai-kurakula/banks-etl/internal/platform/config"
	"github.com/Sai-kurakula/banks-etl/internal/repositories/database/pgsql"
	"github.com/Sai-kurakula/banks-etl/internal/repositories/database/sqlite"
	"github.com/Sai-kurakula/banks-etl/internal/repositories/ratefile"
	"github.com/Sai-kurakula/banks-etl/pkg/database"
	"github.com/google/uuid"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("run_id", uuid.NewString()),
	)
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	fetcher := web.NewHTTPFetcher(nil)
	rateRepo := ratefile.NewCSVRateRepository(cfg.RatesCSVPath)
	audit := auditlog.New(cfg.AuditLogPath)

	pipeline := services.NewPipelineService(
		services.NewExtractService(fetcher, nil, logger),
		services.NewTransformService(rateRepo, logger),
		services.NewLoadService(logger),
		repoOpener(cfg),
		audit,
		os.Stdout,
		logger,
	)

	params := services.RunParams{
		SourceURL: cfg.SourceURL,
		CSVPath:   cfg.OutputCSVPath,
		TableName: cfg.TableName,
		Queries: []string{
			fmt.Sprintf("SELECT * FROM %s", cfg.TableName),
			fmt.Sprintf("SELECT AVG(MC_GBP_Billion) FROM %s", cfg.TableName),
			fmt.Sprintf("SELECT Name FROM %s LIMIT 5", cfg.TableName),
		},
	}

	if err := pipeline.Run(ctx, params); err != nil {
		logger.Error("Pipeline run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Pipeline run finished")
}

// repoOpener selects the database sink for the configured driver. The
// pipeline invokes it only after the transform stage.
func repoOpener(cfg *config.Config) services.RepoOpener {
	return func(ctx context.Context) (portsrepo.BankRepositoryFacade, error) {
		switch cfg.DBDriver {
		case config.DriverPostgres:
			pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
			if err != nil {
				return nil, err
			}
			return pgsql.NewPgxBankRepository(pool), nil
		default:
			return sqlite.NewSQLiteBankRepository(cfg.SQLitePath)
		}
	}
}
