// Package loader reads statement exports into tables. One entry point
// dispatches on the file extension; every format lands in the same
// Table shape so detection and extraction stay format-blind.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/koboledger/bankfeed/internal/domain/statement"
)

// ErrUnsupportedFormat rejects files the pipeline has no reader for.
var ErrUnsupportedFormat = errors.New("unsupported statement format")

// ErrNoTables marks a PDF that opened fine but held no tabular text,
// typically a scanned image statement.
var ErrNoTables = errors.New("no tables found in pdf")

// Load parses one statement export. The filename picks the reader:
// csv, xlsx/xls and pdf are supported.
func Load(data []byte, filename string) (*statement.Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return CSV(data)
	case ".xlsx", ".xls":
		return Excel(data, filename)
	case ".pdf":
		return PDF(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// LoadFile reads and parses a statement export from disk.
func LoadFile(path string) (*statement.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read statement file: %w", err)
	}
	return Load(data, filepath.Base(path))
}
