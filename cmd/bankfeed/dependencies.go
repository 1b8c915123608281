package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/koboledger/bankfeed/internal/domain/statement/store"
	"github.com/koboledger/bankfeed/pkg/config"
	"github.com/koboledger/bankfeed/pkg/db"
)

// openStore connects the pool and prepares the schema. Migrations run
// on every connect so the CLI works against a fresh database.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*db.DB, store.TransactionStore, error) {
	database, err := db.New(db.Config{
		DSN:             cfg.Database.DSN(),
		MaxConns:        25,
		MinConns:        5,
		MaxConnLifetime: 5 * time.Minute,
		MaxConnIdleTime: 10 * time.Minute,
	}, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := store.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to prepare schema: %w", err)
	}

	return database, store.NewPostgresTransactionStore(database.Pool), nil
}
