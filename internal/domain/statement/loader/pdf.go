package loader

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/koboledger/bankfeed/internal/domain/statement"
	"github.com/koboledger/bankfeed/internal/domain/statement/normalizer"
)

// Gaps wider than cellGap points split a text row into separate cells;
// narrower gaps are word spacing inside one cell.
const cellGap = 12.0

// PDF reconstructs a table from the text layer of a PDF statement. The
// library hands back positioned fragments, not cells: fragments sharing
// a baseline form a row, and wide horizontal gaps split the row into
// cells. The first row is the header; repeats of it on later pages are
// dropped.
func PDF(data []byte) (_ *statement.Table, err error) {
	// The pdf library panics on some malformed files instead of
	// returning an error.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader crashed: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	var rows [][]string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows = append(rows, pageRows(page.Content().Text)...)
	}
	if len(rows) == 0 {
		return nil, ErrNoTables
	}

	header := rows[0]
	body := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if sameRow(row, header) {
			continue
		}
		body = append(body, row)
	}
	return statement.NewTable(normalizer.NormalizeHeaders(header), body), nil
}

// pageRows groups positioned fragments into rows by baseline, then
// splits each row into cells on wide gaps. Rows come out top to bottom,
// cells left to right.
func pageRows(texts []pdf.Text) [][]string {
	type fragment struct {
		x, w float64
		s    string
	}
	byLine := make(map[int][]fragment)
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		y := int(math.Round(t.Y))
		byLine[y] = append(byLine[y], fragment{x: t.X, w: t.W, s: t.S})
	}

	// PDF Y runs bottom to top.
	ys := make([]int, 0, len(byLine))
	for y := range byLine {
		ys = append(ys, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ys)))

	var rows [][]string
	for _, y := range ys {
		frags := byLine[y]
		sort.Slice(frags, func(a, b int) bool { return frags[a].x < frags[b].x })

		var cells []string
		var cell strings.Builder
		end := 0.0
		for _, f := range frags {
			switch gap := f.x - end; {
			case cell.Len() == 0:
			case gap > cellGap:
				cells = append(cells, strings.TrimSpace(cell.String()))
				cell.Reset()
			case gap > 1.0:
				cell.WriteByte(' ')
			}
			cell.WriteString(f.s)
			if e := f.x + f.w; e > end {
				end = e
			}
		}
		if cell.Len() > 0 {
			cells = append(cells, strings.TrimSpace(cell.String()))
		}
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	}
	return rows
}

func sameRow(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !strings.EqualFold(strings.TrimSpace(a[i]), strings.TrimSpace(b[i])) {
			return false
		}
	}
	return true
}
