// Command bankfeed ingests Nigerian bank and processor statement
// exports into PostgreSQL.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/koboledger/bankfeed/internal/domain/statement"
	"github.com/koboledger/bankfeed/internal/domain/statement/service"
	"github.com/koboledger/bankfeed/internal/domain/statement/store"
	"github.com/koboledger/bankfeed/pkg/config"
	"github.com/koboledger/bankfeed/pkg/money"
	"github.com/koboledger/bankfeed/pkg/storage"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Logging.SlogLevel(),
	}))

	switch os.Args[1] {
	case "ingest":
		runIngest(cfg, logger)
	case "migrate":
		runMigrate(cfg, logger)
	case "stats":
		runStats(cfg, logger)
	case "files":
		runFiles(cfg, logger)
	case "purge":
		runPurge(cfg, logger)
	case "dedupe":
		runDedupe(cfg, logger)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("bankfeed ingests bank and processor statement exports into PostgreSQL")
	fmt.Println("\nUsage:")
	fmt.Println("  bankfeed <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  ingest    Process statement files and store the extracted transactions")
	fmt.Println("  migrate   Run database migrations")
	fmt.Println("  stats     Show store totals")
	fmt.Println("  files     List imported statement files")
	fmt.Println("  purge     Delete every transaction imported from one file")
	fmt.Println("  dedupe    Remove duplicate transactions across imports")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'bankfeed <command> -h' for more information on a command.")
}

func runIngest(cfg *config.Config, logger *slog.Logger) {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	noStore := fs.Bool("no-store", false, "extract without writing to the database")
	archiveDir := fs.String("archive-dir", cfg.Ingest.ArchiveDir, "archive processed files into this directory")
	skipDir := fs.String("skip-report-dir", cfg.Ingest.SkipReportDir, "write per-file skip reports into this directory")
	fs.Parse(os.Args[2:])

	paths := fs.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: bankfeed ingest [options] FILE...")
		os.Exit(1)
	}

	ctx := context.Background()
	svc := service.NewIngestService(logger)

	if cfg.Ingest.StoreEnabled && !*noStore {
		database, st, err := openStore(ctx, cfg, logger)
		if err != nil {
			logger.Error("failed to open transaction store", "error", err)
			os.Exit(1)
		}
		defer database.Close()
		svc = svc.WithStore(st)
	}

	if *archiveDir != "" {
		archive, err := storage.NewLocalStorage(*archiveDir)
		if err != nil {
			logger.Error("failed to open archive", "dir", *archiveDir, "error", err)
			os.Exit(1)
		}
		svc = svc.WithArchive(archive)
	}

	if *skipDir != "" {
		if err := os.MkdirAll(*skipDir, 0755); err != nil {
			logger.Error("failed to create skip report directory", "dir", *skipDir, "error", err)
			os.Exit(1)
		}
		svc = svc.WithSkipReports(*skipDir)
	}

	results := svc.ProcessBatch(ctx, paths)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Printf("%s: FAILED: %v\n", r.Path, r.Err)
			continue
		}
		sum := r.Result.Summary
		total := money.Sum(amounts(r.Result.Transactions))
		fmt.Printf("%s: %s, %d rows in, %d transactions (%s), %d skipped\n",
			r.Path, sum.Bank, sum.RowsIn, sum.RowsOut, total.Display(), sum.Skipped())
	}

	fmt.Printf("\nProcessed %d file(s), %d failed\n", len(results), failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func runMigrate(cfg *config.Config, logger *slog.Logger) {
	if err := store.RunMigrations(context.Background(), cfg.Database.DSN()); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	fmt.Println("Migrations complete.")
}

func runStats(cfg *config.Config, logger *slog.Logger) {
	ctx := context.Background()
	database, st, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open transaction store", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	stats, err := st.Stats(ctx)
	if err != nil {
		logger.Error("failed to read store stats", "error", err)
		os.Exit(1)
	}

	fmt.Println("=== Store Totals ===")
	fmt.Printf("Transactions: %d\n", stats.Transactions)
	fmt.Printf("Customers:    %d\n", stats.Customers)
	fmt.Printf("Total amount: %s\n", money.NewFromFloat(stats.TotalAmount).Display())
}

func runFiles(cfg *config.Config, logger *slog.Logger) {
	ctx := context.Background()
	database, st, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open transaction store", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	files, err := st.ListFileSources(ctx)
	if err != nil {
		logger.Error("failed to list imported files", "error", err)
		os.Exit(1)
	}

	if len(files) == 0 {
		fmt.Println("No imports yet.")
		return
	}

	fmt.Printf("=== Imported Files (%d) ===\n", len(files))
	for _, f := range files {
		fmt.Printf("%s: %d transactions, %s, last imported %s\n",
			f.FileSource, f.Count, money.NewFromFloat(f.Total).Display(),
			f.LastImported.Format("2006-01-02 15:04"))
	}
}

func runPurge(cfg *config.Config, logger *slog.Logger) {
	fs := flag.NewFlagSet("purge", flag.ExitOnError)
	fileSource := fs.String("file", "", "file_source value whose transactions are deleted")
	fs.Parse(os.Args[2:])

	if *fileSource == "" {
		fmt.Fprintln(os.Stderr, "Usage: bankfeed purge -file NAME")
		os.Exit(1)
	}

	ctx := context.Background()
	database, st, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open transaction store", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	n, err := st.DeleteFileSource(ctx, *fileSource)
	if err != nil {
		logger.Error("failed to purge file", "file", *fileSource, "error", err)
		os.Exit(1)
	}

	fmt.Printf("Deleted %d transaction(s) from %s\n", n, *fileSource)
}

func runDedupe(cfg *config.Config, logger *slog.Logger) {
	ctx := context.Background()
	database, st, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open transaction store", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	n, err := st.RemoveDuplicates(ctx)
	if err != nil {
		logger.Error("failed to remove duplicates", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Deleted %d duplicate transaction(s)\n", n)
}

func amounts(candidates []statement.Candidate) []float64 {
	out := make([]float64, len(candidates))
	for i, c := range candidates {
		out[i] = c.Amount
	}
	return out
}
