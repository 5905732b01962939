package repositories

import (
	"context"

	"github.com/Sai-kurakula/banks-etl/internal/core/domain"
)

// BankWriter defines the replace-write operation for the persisted bank table.
type BankWriter interface {
	// ReplaceBanks atomically replaces the contents of the named table with
	// the given records, preserving their order. Prior rows are dropped.
	ReplaceBanks(ctx context.Context, tableName string, banks []domain.EnrichedBankRecord) error
}

// BankQuerier defines ad-hoc read access to the persisted bank table.
type BankQuerier interface {
	// RunQuery executes a read-only SQL statement and returns the result as
	// a string-rendered table. Pass-through to the underlying engine.
	RunQuery(ctx context.Context, query string) (*domain.QueryResult, error)
}

// BankRepositoryFacade combines all bank-table repository interfaces.
type BankRepositoryFacade interface {
	BankWriter
	BankQuerier

	// Close releases the underlying database handle.
	Close() error
}
