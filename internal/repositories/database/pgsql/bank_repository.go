package pgsql

import (
	"context"
	"fmt"
	"regexp"

	"github.com/Sai-kurakula/banks-etl/internal/core/domain"
	portsrepo "github.com/Sai-kurakula/banks-etl/internal/core/ports/repositories"
	"github.com/Sai-kurakula/banks-etl/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// PgxBankRepository persists the bank table in PostgreSQL, for deployments
// that point the loader at a shared server instead of a local database file.
type PgxBankRepository struct {
	pool *pgxpool.Pool
}

// NewPgxBankRepository creates a new repository on top of an existing pool.
func NewPgxBankRepository(pool *pgxpool.Pool) *PgxBankRepository {
	return &PgxBankRepository{pool: pool}
}

var _ portsrepo.BankRepositoryFacade = (*PgxBankRepository)(nil)

// ReplaceBanks drops and recreates the named table inside one transaction,
// then inserts the records in order.
func (r *PgxBankRepository) ReplaceBanks(ctx context.Context, tableName string, banks []domain.EnrichedBankRecord) error {
	if !identPattern.MatchString(tableName) {
		return fmt.Errorf("invalid table name %q", tableName)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %q`, tableName)); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}

	createStmt := fmt.Sprintf(`
		CREATE TABLE %q (
			%q TEXT,
			%q DOUBLE PRECISION,
			%q DOUBLE PRECISION,
			%q DOUBLE PRECISION,
			%q DOUBLE PRECISION
		)`, tableName,
		domain.ColumnName,
		domain.ColumnMarketCapUSD,
		domain.ColumnMarketCapGBP,
		domain.ColumnMarketCapEUR,
		domain.ColumnMarketCapINR,
	)
	if _, err := tx.Exec(ctx, createStmt); err != nil {
		return fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	insertStmt := fmt.Sprintf(`INSERT INTO %q VALUES ($1, $2, $3, $4, $5)`, tableName)
	for _, bank := range mapping.ToModelBankSlice(banks) {
		_, err := tx.Exec(ctx, insertStmt,
			bank.Name,
			bank.MarketCapUSD,
			bank.MarketCapGBP,
			bank.MarketCapEUR,
			bank.MarketCapINR,
		)
		if err != nil {
			return fmt.Errorf("failed to insert bank %q: %w", bank.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit replacement of %s: %w", tableName, err)
	}
	return nil
}

// RunQuery executes an ad-hoc read query and renders every value as a string.
func (r *PgxBankRepository) RunQuery(ctx context.Context, query string) (*domain.QueryResult, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	result := &domain.QueryResult{Columns: make([]string, len(fields))}
	for i, f := range fields {
		result.Columns[i] = f.Name
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to read result row: %w", err)
		}
		row := make([]string, len(values))
		for i, v := range values {
			if v != nil {
				row[i] = fmt.Sprint(v)
			}
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read result rows: %w", err)
	}
	return result, nil
}

// Close releases the connection pool.
func (r *PgxBankRepository) Close() error {
	r.pool.Close()
	return nil
}
