// Package store persists canonical transactions to PostgreSQL.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/koboledger/bankfeed/internal/domain/statement"
)

// Transaction is one persisted canonical transaction row.
type Transaction struct {
	ID              int64
	ImportID        uuid.UUID
	Date            time.Time
	Amount          float64
	CustomerName    string
	CustomerEmail   string
	Reference       string
	Description     string
	Bank            string
	CustomerBank    string
	Channel         string
	CardType        string
	Status          string
	GatewayResponse string
	FileSource      string
	CreatedAt       time.Time
}

// FileInfo summarizes the stored rows of one imported file.
type FileInfo struct {
	FileSource   string
	Count        int64
	Total        float64
	LastImported time.Time
}

// Stats aggregates the whole store.
type Stats struct {
	Transactions int64
	Customers    int64
	TotalAmount  float64
}

// TransactionStore defines the persistence operations for canonical transactions
type TransactionStore interface {
	// Write operations
	InsertBatch(ctx context.Context, importID uuid.UUID, candidates []statement.Candidate) (int64, error)
	DeleteFileSource(ctx context.Context, fileSource string) (int64, error)
	RemoveDuplicates(ctx context.Context) (int64, error)

	// Read operations
	ByFileSource(ctx context.Context, fileSource string) ([]Transaction, error)
	ByCustomer(ctx context.Context, customer string) ([]Transaction, error)
	ListFileSources(ctx context.Context) ([]FileInfo, error)
	Stats(ctx context.Context) (*Stats, error)
}

// DB is the subset of pgxpool.Pool the store uses. pgxmock's pool implements
// the same subset.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}
