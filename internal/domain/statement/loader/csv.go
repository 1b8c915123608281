package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/koboledger/bankfeed/internal/domain/statement"
	"github.com/koboledger/bankfeed/internal/domain/statement/normalizer"
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// CSV parses a comma-separated export. A UTF-8 BOM is stripped, and
// content that is not valid UTF-8 is reinterpreted as Latin-1, which
// covers the older bank portals still emitting Windows-encoded files.
// Rows may carry differing field counts; short rows read as absent
// cells downstream.
func CSV(data []byte) (*statement.Table, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode csv: %w", err)
		}
		data = decoded
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) == 0 {
		return statement.NewTable(nil, nil), nil
	}
	return statement.NewTable(normalizer.NormalizeHeaders(records[0]), records[1:]), nil
}
