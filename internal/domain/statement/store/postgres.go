package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/koboledger/bankfeed/internal/domain/statement"
)

// PostgresTransactionStore implements TransactionStore using PostgreSQL
type PostgresTransactionStore struct {
	db DB
}

// NewPostgresTransactionStore creates a new PostgreSQL transaction store
func NewPostgresTransactionStore(db DB) *PostgresTransactionStore {
	return &PostgresTransactionStore{db: db}
}

// copyColumns is the column order InsertBatch writes. id and created_at take
// their schema defaults.
var copyColumns = []string{
	"import_id", "date", "amount", "customer_name", "customer_email",
	"reference", "description", "bank", "customer_bank", "channel",
	"card_type", "status", "gateway_response", "file_source",
}

// InsertBatch bulk-inserts candidates under one import id and returns the
// number of rows written.
func (s *PostgresTransactionStore) InsertBatch(ctx context.Context, importID uuid.UUID, candidates []statement.Candidate) (int64, error) {
	if len(candidates) == 0 {
		return 0, nil
	}

	n, err := s.db.CopyFrom(ctx, pgx.Identifier{"transactions"}, copyColumns,
		pgx.CopyFromSlice(len(candidates), func(i int) ([]any, error) {
			c := candidates[i]
			return []any{
				importID, c.Date, c.Amount, c.CustomerName, c.CustomerEmail,
				c.Reference, c.Description, c.Bank, c.CustomerBank, c.Channel,
				c.CardType, c.Status, c.GatewayResponse, c.FileSource,
			}, nil
		}))
	if err != nil {
		return 0, fmt.Errorf("failed to insert transactions: %w", err)
	}
	return n, nil
}

// ByFileSource retrieves all transactions imported from one file.
func (s *PostgresTransactionStore) ByFileSource(ctx context.Context, fileSource string) ([]Transaction, error) {
	query := `
		SELECT id, import_id, date, amount, customer_name, customer_email,
			reference, description, bank, customer_bank, channel, card_type,
			status, gateway_response, file_source, created_at
		FROM transactions
		WHERE file_source = $1
		ORDER BY date, id`

	rows, err := s.db.Query(ctx, query, fileSource)
	if err != nil {
		return nil, fmt.Errorf("failed to query by file source: %w", err)
	}
	defer rows.Close()

	var txs []Transaction
	for rows.Next() {
		var t Transaction
		err := rows.Scan(
			&t.ID, &t.ImportID, &t.Date, &t.Amount, &t.CustomerName,
			&t.CustomerEmail, &t.Reference, &t.Description, &t.Bank,
			&t.CustomerBank, &t.Channel, &t.CardType, &t.Status,
			&t.GatewayResponse, &t.FileSource, &t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// ByCustomer retrieves all transactions attributed to one customer, matched
// by name or email.
func (s *PostgresTransactionStore) ByCustomer(ctx context.Context, customer string) ([]Transaction, error) {
	query := `
		SELECT id, import_id, date, amount, customer_name, customer_email,
			reference, description, bank, customer_bank, channel, card_type,
			status, gateway_response, file_source, created_at
		FROM transactions
		WHERE customer_name = $1 OR customer_email = $1
		ORDER BY date, id`

	rows, err := s.db.Query(ctx, query, customer)
	if err != nil {
		return nil, fmt.Errorf("failed to query by customer: %w", err)
	}
	defer rows.Close()

	var txs []Transaction
	for rows.Next() {
		var t Transaction
		err := rows.Scan(
			&t.ID, &t.ImportID, &t.Date, &t.Amount, &t.CustomerName,
			&t.CustomerEmail, &t.Reference, &t.Description, &t.Bank,
			&t.CustomerBank, &t.Channel, &t.CardType, &t.Status,
			&t.GatewayResponse, &t.FileSource, &t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// DeleteFileSource removes every transaction imported from one file and
// returns how many rows were deleted.
func (s *PostgresTransactionStore) DeleteFileSource(ctx context.Context, fileSource string) (int64, error) {
	query := `DELETE FROM transactions WHERE file_source = $1`

	result, err := s.db.Exec(ctx, query, fileSource)
	if err != nil {
		return 0, fmt.Errorf("failed to delete file source: %w", err)
	}
	return result.RowsAffected(), nil
}

// ListFileSources returns per-file row counts and totals, most recently
// imported first.
func (s *PostgresTransactionStore) ListFileSources(ctx context.Context) ([]FileInfo, error) {
	query := `
		SELECT file_source, COUNT(*), COALESCE(SUM(amount), 0), MAX(created_at)
		FROM transactions
		GROUP BY file_source
		ORDER BY MAX(created_at) DESC`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list file sources: %w", err)
	}
	defer rows.Close()

	var files []FileInfo
	for rows.Next() {
		var f FileInfo
		if err := rows.Scan(&f.FileSource, &f.Count, &f.Total, &f.LastImported); err != nil {
			return nil, fmt.Errorf("failed to scan file source: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// Stats returns store-wide totals.
func (s *PostgresTransactionStore) Stats(ctx context.Context) (*Stats, error) {
	query := `
		SELECT COUNT(*), COUNT(DISTINCT customer_name), COALESCE(SUM(amount), 0)
		FROM transactions`

	stats := &Stats{}
	err := s.db.QueryRow(ctx, query).Scan(&stats.Transactions, &stats.Customers, &stats.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}
	return stats, nil
}

// RemoveDuplicates deletes repeated rows across the whole store, keeping the
// lowest id of each (reference, date, customer_name, amount, bank) group.
// Runs as a single statement so large stores are swept in one pass.
func (s *PostgresTransactionStore) RemoveDuplicates(ctx context.Context) (int64, error) {
	query := `
		WITH ranked AS (
			SELECT id, ROW_NUMBER() OVER (
				PARTITION BY reference, date, customer_name, amount, bank
				ORDER BY id
			) AS rn
			FROM transactions
		)
		DELETE FROM transactions
		WHERE id IN (SELECT id FROM ranked WHERE rn > 1)`

	result, err := s.db.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to remove duplicates: %w", err)
	}
	return result.RowsAffected(), nil
}
