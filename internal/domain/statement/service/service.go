// Package service orchestrates the statement ingestion pipeline.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/koboledger/bankfeed/internal/domain/statement"
	"github.com/koboledger/bankfeed/internal/domain/statement/banks"
	"github.com/koboledger/bankfeed/internal/domain/statement/dedupe"
	"github.com/koboledger/bankfeed/internal/domain/statement/extract"
	"github.com/koboledger/bankfeed/internal/domain/statement/loader"
	"github.com/koboledger/bankfeed/internal/domain/statement/narration"
	"github.com/koboledger/bankfeed/internal/domain/statement/sniffer"
	"github.com/koboledger/bankfeed/internal/domain/statement/store"
	"github.com/koboledger/bankfeed/pkg/storage"
)

// Result is the outcome of ingesting one statement file.
type Result struct {
	ImportID     uuid.UUID
	Transactions []statement.Candidate
	Skips        []statement.RowSkip
	Summary      statement.Summary
}

// BatchResult pairs one input path with its outcome.
type BatchResult struct {
	Path   string
	Result *Result
	Err    error
}

// IngestService runs statement files through load, detection, extraction
// and dedup, then hands the survivors to the optional collaborators.
type IngestService struct {
	deps          extract.Deps
	store         store.TransactionStore // optional: nil extracts without persisting
	archive       storage.Storage        // optional: nil skips archiving
	skipReportDir string
	logger        *slog.Logger
	tracer        trace.Tracer
}

// NewIngestService creates a new ingest service
func NewIngestService(logger *slog.Logger) *IngestService {
	dict := banks.NewDictionary()
	return &IngestService{
		deps: extract.Deps{
			Banks:     dict,
			Narration: narration.New(dict),
		},
		logger: logger,
		tracer: otel.Tracer("bankfeed.ingest"),
	}
}

// WithStore adds transaction persistence after each processed file
func (s *IngestService) WithStore(st store.TransactionStore) *IngestService {
	s.store = st
	return s
}

// WithArchive adds raw-statement archiving after each processed file
func (s *IngestService) WithArchive(archive storage.Storage) *IngestService {
	s.archive = archive
	return s
}

// WithSkipReports writes a per-file CSV of dropped rows into dir
func (s *IngestService) WithSkipReports(dir string) *IngestService {
	s.skipReportDir = dir
	return s
}

// Process runs one statement through the full pipeline: load, drop empty
// rows, detect the source profile, extract candidates, remove in-file
// duplicates, then store, archive and report as configured.
func (s *IngestService) Process(ctx context.Context, data []byte, filename string) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "ProcessStatement")
	defer span.End()
	span.SetAttributes(attribute.String("file", filename))

	table, err := loader.Load(data, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load statement: %w", err)
	}

	rowsIn := table.Len()
	emptyRows := table.DropEmptyRows()

	det := sniffer.Detect(s.deps.Banks, filename, table.Columns)
	span.SetAttributes(
		attribute.String("profile", string(det.Profile)),
		attribute.String("bank", det.Bank),
	)

	extRes := extract.ForDetection(det, s.deps).Extract(table, filename)
	span.AddEvent("rows extracted")

	kept, dupSkips := dedupe.Apply(det.Profile, extRes.Candidates)
	span.AddEvent("duplicates removed")

	summary := statement.Summary{
		FileSource: filename,
		Profile:    det.Profile,
		Bank:       det.Bank,
		RowsIn:     rowsIn,
		RowsOut:    len(kept),
		Note:       extRes.Note,
	}
	for i := 0; i < emptyRows; i++ {
		summary.Count(statement.SkipEmptyRow)
	}
	for _, sk := range extRes.Skips {
		summary.Count(sk.Reason)
	}
	for _, sk := range dupSkips {
		summary.Count(sk.Reason)
	}

	res := &Result{
		ImportID:     uuid.New(),
		Transactions: kept,
		Skips:        append(extRes.Skips, dupSkips...),
		Summary:      summary,
	}
	span.SetAttributes(
		attribute.Int("rows_in", rowsIn),
		attribute.Int("rows_out", len(kept)),
		attribute.Int("rows_skipped", summary.Skipped()),
	)

	if extRes.Note != "" {
		s.logger.Warn("no rows extracted", "file", filename, "profile", det.Profile, "note", extRes.Note)
	}

	if s.store != nil && len(kept) > 0 {
		n, err := s.store.InsertBatch(ctx, res.ImportID, kept)
		if err != nil {
			return nil, fmt.Errorf("failed to store transactions: %w", err)
		}
		s.logger.Info("transactions stored", "file", filename, "import_id", res.ImportID, "count", n)
	}

	if s.archive != nil {
		if _, err := s.archive.Save(ctx, filename, res.ImportID, data); err != nil {
			s.logger.Warn("failed to archive statement", "file", filename, "error", err)
		}
	}

	if s.skipReportDir != "" && len(res.Skips) > 0 {
		path := filepath.Join(s.skipReportDir, skipReportName(filename))
		if err := WriteSkipReport(path, filename, res.Skips); err != nil {
			s.logger.Warn("failed to write skip report", "file", filename, "error", err)
		}
	}

	s.logger.Info("statement processed",
		"file", filename,
		"profile", det.Profile,
		"bank", det.Bank,
		"rows_in", rowsIn,
		"rows_out", len(kept),
		"skipped", summary.Skipped(),
	)

	return res, nil
}

// ProcessFile reads and processes one statement file from disk.
func (s *IngestService) ProcessFile(ctx context.Context, path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read statement file: %w", err)
	}
	return s.Process(ctx, data, filepath.Base(path))
}

// ProcessBatch processes files one at a time in the order given. A failing
// file is recorded in its entry and the batch continues.
func (s *IngestService) ProcessBatch(ctx context.Context, paths []string) []BatchResult {
	results := make([]BatchResult, 0, len(paths))
	for _, path := range paths {
		res, err := s.ProcessFile(ctx, path)
		if err != nil {
			s.logger.Error("failed to process statement", "file", path, "error", err)
		}
		results = append(results, BatchResult{Path: path, Result: res, Err: err})
	}
	return results
}
