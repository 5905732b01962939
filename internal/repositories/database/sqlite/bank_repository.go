package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/Sai-kurakula/banks-etl/internal/core/domain"
	portsrepo "github.com/Sai-kurakula/banks-etl/internal/core/ports/repositories"
	"github.com/Sai-kurakula/banks-etl/internal/utils/mapping"

	_ "modernc.org/sqlite"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteBankRepository persists the bank table in a SQLite database file.
// The file is the run's single exclusive handle; callers open it after the
// transform stage and close it at the end of the run.
type SQLiteBankRepository struct {
	db *sql.DB
}

// NewSQLiteBankRepository opens (creating if needed) the database file at path.
func NewSQLiteBankRepository(path string) (*SQLiteBankRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database %s: %w", path, err)
	}
	return &SQLiteBankRepository{db: db}, nil
}

var _ portsrepo.BankRepositoryFacade = (*SQLiteBankRepository)(nil)

// ReplaceBanks drops and recreates the named table inside one transaction,
// then inserts the records in order. Prior contents never survive a
// successful call, and a failed call leaves them untouched.
func (r *SQLiteBankRepository) ReplaceBanks(ctx context.Context, tableName string, banks []domain.EnrichedBankRecord) error {
	if !identPattern.MatchString(tableName) {
		return fmt.Errorf("invalid table name %q", tableName)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %q`, tableName)); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}

	createStmt := fmt.Sprintf(`
		CREATE TABLE %q (
			%q TEXT,
			%q REAL,
			%q REAL,
			%q REAL,
			%q REAL
		)`, tableName,
		domain.ColumnName,
		domain.ColumnMarketCapUSD,
		domain.ColumnMarketCapGBP,
		domain.ColumnMarketCapEUR,
		domain.ColumnMarketCapINR,
	)
	if _, err := tx.ExecContext(ctx, createStmt); err != nil {
		return fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	insertStmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %q VALUES (?, ?, ?, ?, ?)`, tableName))
	if err != nil {
		return fmt.Errorf("failed to prepare insert for %s: %w", tableName, err)
	}
	defer insertStmt.Close()

	for _, bank := range mapping.ToModelBankSlice(banks) {
		_, err := insertStmt.ExecContext(ctx,
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

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit replacement of %s: %w", tableName, err)
	}
	return nil
}

// RunQuery executes an ad-hoc read query and renders every value as a string.
func (r *SQLiteBankRepository) RunQuery(ctx context.Context, query string) (*domain.QueryResult, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	result := &domain.QueryResult{Columns: columns}
	for rows.Next() {
		values := make([]sql.NullString, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}

		row := make([]string, len(columns))
		for i, v := range values {
			if v.Valid {
				row[i] = v.String
			}
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read result rows: %w", err)
	}
	return result, nil
}

// Close releases the database handle.
func (r *SQLiteBankRepository) Close() error {
	return r.db.Close()
}
