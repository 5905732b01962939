package services

import (
	"context"

	"github.com/Sai-kurakula/banks-etl/internal/core/domain"
	portsrepo "github.com/Sai-kurakula/banks-etl/internal/core/ports/repositories"
)

// PageFetcher retrieves a document from a location. Implementations block
// until the document is available; callers wanting timeouts wrap the context.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// ExtractorSvcFacade produces raw bank records from the source document.
type ExtractorSvcFacade interface {
	Extract(ctx context.Context, url string) ([]domain.BankRecord, error)
}

// TransformerSvcFacade converts raw records into currency-enriched records.
type TransformerSvcFacade interface {
	Transform(ctx context.Context, records []domain.BankRecord) ([]domain.EnrichedBankRecord, error)
}

// LoaderSvcFacade persists the enriched table to the CSV and database sinks.
// The database handle is passed per call because it is acquired only after
// the transform stage and released at the end of the run.
type LoaderSvcFacade interface {
	LoadToCSV(ctx context.Context, banks []domain.EnrichedBankRecord, path string) error
	LoadToDB(ctx context.Context, repo portsrepo.BankWriter, banks []domain.EnrichedBankRecord, tableName string) error
}

// QueryRunnerSvcFacade executes ad-hoc read queries against the persisted table.
type QueryRunnerSvcFacade interface {
	Run(ctx context.Context, query string) (*domain.QueryResult, error)
}
