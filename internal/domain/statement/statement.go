// Package statement defines the shared data model for the ingestion pipeline:
// raw tables as loaded from statement files, source profiles, transaction
// candidates, and the per-file diagnostic summary.
package statement

import (
	"strings"
	"time"
)

// Profile identifies which institution/processor produced a statement file.
// It is detected once per file and governs column mapping, row filtering and
// narration parsing for every row in that file.
type Profile string

const (
	ProfilePaystack Profile = "paystack"
	ProfileProvidus Profile = "providus"
	ProfileFCMB     Profile = "fcmb"
	ProfileGeneric  Profile = "generic"
)

// Detection is the result of profile detection. Generic files still carry
// the bank name matched from the filename (e.g. "GTBank", "Flutterwave"),
// falling back to "Unknown Bank".
type Detection struct {
	Profile Profile
	Bank    string
}

// Table is an ordered tabular view of a loaded statement file. Column labels
// are not guaranteed unique, non-empty or meaningful until they have been
// through normalizer.NormalizeHeaders; cells are kept as raw strings.
type Table struct {
	Columns []string
	Rows    [][]string

	index map[string]int
}

// NewTable builds a table from column labels and rows. Short rows are allowed;
// missing cells read as absent.
func NewTable(columns []string, rows [][]string) *Table {
	t := &Table{Columns: columns, Rows: rows}
	t.Reindex()
	return t
}

// Reindex rebuilds the label -> position index. Call after mutating Columns.
// When labels repeat, the first occurrence wins, matching the behavior of
// dropping duplicate columns after header normalization.
func (t *Table) Reindex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		if _, ok := t.index[c]; !ok {
			t.index[c] = i
		}
	}
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Value returns the trimmed cell under the given column label for row i.
// ok is false when the column does not exist, the row is short, or the cell
// is blank or a stringified NaN - the caller never has to distinguish
// "column missing" from "cell empty".
func (t *Table) Value(i int, column string) (string, bool) {
	pos, ok := t.index[column]
	if !ok || i < 0 || i >= len(t.Rows) {
		return "", false
	}
	row := t.Rows[i]
	if pos >= len(row) {
		return "", false
	}
	v := strings.TrimSpace(row[pos])
	if v == "" || strings.EqualFold(v, "nan") || strings.EqualFold(v, "none") {
		return "", false
	}
	return v, true
}

// DropEmptyRows removes rows whose cells are all blank and reports how
// many were removed.
func (t *Table) DropEmptyRows() int {
	kept := t.Rows[:0]
	for _, row := range t.Rows {
		empty := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" && !strings.EqualFold(strings.TrimSpace(cell), "nan") {
				empty = false
				break
			}
		}
		if !empty {
			kept = append(kept, row)
		}
	}
	dropped := len(t.Rows) - len(kept)
	t.Rows = kept
	return dropped
}

// DropEmptyColumns removes columns whose cells are all blank across every row.
func (t *Table) DropEmptyColumns() {
	keep := make([]bool, len(t.Columns))
	for i := range t.Columns {
		for _, row := range t.Rows {
			if i < len(row) && strings.TrimSpace(row[i]) != "" && !strings.EqualFold(strings.TrimSpace(row[i]), "nan") {
				keep[i] = true
				break
			}
		}
	}
	columns := make([]string, 0, len(t.Columns))
	for i, c := range t.Columns {
		if keep[i] {
			columns = append(columns, c)
		}
	}
	rows := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		cells := make([]string, 0, len(columns))
		for i := range t.Columns {
			if !keep[i] {
				continue
			}
			if i < len(row) {
				cells = append(cells, row[i])
			} else {
				cells = append(cells, "")
			}
		}
		rows[r] = cells
	}
	t.Columns = columns
	t.Rows = rows
	t.Reindex()
}

// UnknownCustomer is the sentinel identity assigned when no name can be
// recovered from a row or its narration.
const UnknownCustomer = "Unknown Customer"

// Candidate is a transaction extracted from one statement row, before
// deduplication. Amount is always positive and Date never zero for emitted
// candidates; rows violating either are skipped upstream.
type Candidate struct {
	Date            time.Time
	Amount          float64
	CustomerName    string
	CustomerEmail   string
	Reference       string
	Description     string
	Bank            string // processor/institution that produced the file
	CustomerBank    string // counterparty bank recovered from narration
	Channel         string
	CardType        string
	Status          string
	GatewayResponse string
	FileSource      string
}

// SkipReason classifies why a row was dropped instead of producing a
// candidate. Skips are diagnostics, never errors.
type SkipReason string

const (
	SkipBadDate      SkipReason = "bad_date"
	SkipBadAmount    SkipReason = "bad_amount"
	SkipNotCredit    SkipReason = "not_credit"
	SkipFailedStatus SkipReason = "failed_status"
	SkipBalanceRow   SkipReason = "balance_row"
	SkipSystemCharge SkipReason = "system_charge"
	SkipFooterRow    SkipReason = "footer_row"
	SkipDuplicate    SkipReason = "duplicate"
	SkipEmptyRow     SkipReason = "empty_row"
)

// RowSkip records one dropped row for the skip report.
type RowSkip struct {
	Row    int
	Reason SkipReason
	Detail string
}

// Summary is the advisory per-file diagnostic handed to operators. It is not
// part of the canonical data contract.
type Summary struct {
	FileSource string
	Profile    Profile
	Bank       string
	RowsIn     int
	RowsOut    int
	Skips      map[SkipReason]int
	Note       string // e.g. "required columns not found"
}

// Count increments the summary's tally for one skip reason.
func (s *Summary) Count(reason SkipReason) {
	if s.Skips == nil {
		s.Skips = make(map[SkipReason]int)
	}
	s.Skips[reason]++
}

// Skipped returns the total number of rows dropped across all reasons.
func (s *Summary) Skipped() int {
	n := 0
	for _, c := range s.Skips {
		n += c
	}
	return n
}
