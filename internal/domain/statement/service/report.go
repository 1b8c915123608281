package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/koboledger/bankfeed/internal/domain/statement"
)

// SkipRecord is one dropped row in a skip report.
type SkipRecord struct {
	FileSource string `csv:"file_source"`
	Row        int    `csv:"row"`
	Reason     string `csv:"reason"`
	Detail     string `csv:"detail"`
}

// WriteSkipReport writes the skipped rows of one statement to a CSV file.
func WriteSkipReport(path, fileSource string, skips []statement.RowSkip) error {
	records := make([]SkipRecord, 0, len(skips))
	for _, sk := range skips {
		records = append(records, SkipRecord{
			FileSource: fileSource,
			Row:        sk.Row,
			Reason:     string(sk.Reason),
			Detail:     sk.Detail,
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create skip report: %w", err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&records, f); err != nil {
		return fmt.Errorf("failed to write skip report: %w", err)
	}
	return nil
}

func skipReportName(filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	return base + "_skips.csv"
}
