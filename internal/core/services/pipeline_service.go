package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Sai-kurakula/banks-etl/internal/apperrors"
	portsrepo "github.com/Sai-kurakula/banks-etl/internal/core/ports/repositories"
	portssvc "github.com/Sai-kurakula/banks-etl/internal/core/ports/services"
	"github.com/Sai-kurakula/banks-etl/internal/platform/auditlog"
)

// RepoOpener opens the database sink. The pipeline calls it only after the
// transform stage and the CSV write have completed, and guarantees release
// on every exit path afterwards.
type RepoOpener func(ctx context.Context) (portsrepo.BankRepositoryFacade, error)

// RunParams holds the per-run locations, replacing the module-level
// constants of older batch scripts so the pipeline can run against fixtures.
type RunParams struct {
	SourceURL string
	CSVPath   string
	TableName string
	// Queries are executed against the persisted table after loading and
	// their results written to the pipeline's query output.
	Queries []string
}

// PipelineService runs the three ETL stages in order, once per invocation.
// No branching, no retries, no concurrency: any stage error aborts the rest
// of the run and surfaces to the caller. Audit milestones are appended after
// each completed stage, so on failure the trail ends at the last stage that
// finished.
type PipelineService struct {
	extractor   portssvc.ExtractorSvcFacade
	transformer portssvc.TransformerSvcFacade
	loader      portssvc.LoaderSvcFacade
	openRepo    RepoOpener
	audit       *auditlog.Logger
	queryOut    io.Writer
	logger      *slog.Logger
}

// NewPipelineService creates a new PipelineService. Query results are
// written to queryOut.
func NewPipelineService(
	extractor portssvc.ExtractorSvcFacade,
	transformer portssvc.TransformerSvcFacade,
	loader portssvc.LoaderSvcFacade,
	openRepo RepoOpener,
	audit *auditlog.Logger,
	queryOut io.Writer,
	logger *slog.Logger,
) *PipelineService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PipelineService{
		extractor:   extractor,
		transformer: transformer,
		loader:      loader,
		openRepo:    openRepo,
		audit:       audit,
		queryOut:    queryOut,
		logger:      logger,
	}
}

// Run executes one full extract-transform-load pass followed by the ad-hoc
// queries in params.
func (p *PipelineService) Run(ctx context.Context, params RunParams) (err error) {
	p.milestone("Preliminaries complete. Initiating ETL process")

	records, err := p.extractor.Extract(ctx, params.SourceURL)
	if err != nil {
		return err
	}
	p.milestone("Data extraction complete. Initiating Transformation process")

	enriched, err := p.transformer.Transform(ctx, records)
	if err != nil {
		return err
	}
	p.milestone("Data transformation complete. Initiating Loading process")

	if err := p.loader.LoadToCSV(ctx, enriched, params.CSVPath); err != nil {
		return err
	}
	p.milestone("Data saved to CSV file")

	repo, err := p.openRepo(ctx)
	if err != nil {
		return fmt.Errorf("%w: opening database: %v", apperrors.ErrPersistence, err)
	}
	defer func() {
		// The handle is released on every exit path, but the milestone is
		// only recorded for a run that completed; a failed run's trail ends
		// at its last finished stage.
		if cerr := repo.Close(); cerr != nil {
			p.logger.Warn("closing database", slog.String("error", cerr.Error()))
		}
		if err == nil {
			p.milestone("Server Connection Closed")
		}
	}()
	p.milestone("SQL Connection initiated")

	if err := p.loader.LoadToDB(ctx, repo, enriched, params.TableName); err != nil {
		return err
	}
	p.milestone("Data loaded to Database as a table, Executing queries")

	runner := NewQueryRunnerService(repo, p.logger)
	for _, query := range params.Queries {
		result, err := runner.Run(ctx, query)
		if err != nil {
			return err
		}
		fmt.Fprintf(p.queryOut, "%s\n%s\n", query, result)
	}
	p.milestone("Process Complete")

	return nil
}

// milestone appends one line to the audit trail. A failing audit write is
// logged but does not abort the run: the trail is an operator convenience,
// not a pipeline stage.
func (p *PipelineService) milestone(message string) {
	if err := p.audit.Log(message); err != nil {
		p.logger.Warn("audit log write failed", slog.String("error", err.Error()))
	}
	p.logger.Info(message)
}
