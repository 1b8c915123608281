package loader

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/koboledger/bankfeed/internal/domain/statement"
	"github.com/koboledger/bankfeed/internal/domain/statement/normalizer"
)

// Excel parses the first sheet of a workbook. When the leading row
// cannot be trusted as a header the sheet is re-read positionally:
// every row becomes data under placeholder labels so the real header
// can be recovered from inside the sheet later.
func Excel(data []byte, filename string) (*statement.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return statement.NewTable(nil, nil), nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return statement.NewTable(nil, nil), nil
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	if bannerSuspect(rows, width, filename) {
		return statement.NewTable(normalizer.NormalizeHeaders(make([]string, width)), rows), nil
	}
	return statement.NewTable(normalizer.NormalizeHeaders(rows[0]), rows[1:]), nil
}

// bannerSuspect reports whether the first row is decoration rather than
// a header. Providus workbooks always open with title banners; from any
// other bank the tell is a leading row that leaves most of the sheet's
// width blank.
func bannerSuspect(rows [][]string, width int, filename string) bool {
	if strings.Contains(strings.ToLower(filename), "providus") {
		return true
	}

	filled := 0
	for _, c := range rows[0] {
		cell := strings.TrimSpace(c)
		if cell == "" {
			continue
		}
		if strings.Contains(strings.ToLower(cell), "providus") {
			return true
		}
		filled++
	}
	blank := width - filled
	return width > 0 && blank*2 > width
}
