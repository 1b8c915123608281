// Package normalizer cleans raw statement cell values: amounts with currency
// glyphs and separators, buried or duplicated column headers, and the date
// formats Nigerian bank and processor exports actually use.
package normalizer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CleanAmount converts a raw cell into a signed float. It strips the naira
// glyph, "NGN", "$", thousands separators and surrounding whitespace, and
// reads parenthesized values as negatives: "(1,234.50)" -> -1234.50.
// Any unparsable input yields exactly 0.0 - the caller treats non-positive
// amounts as a skip, never as an error.
func CleanAmount(raw string) float64 {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "₦", "")
	cleaned = strings.ReplaceAll(cleaned, "NGN", "")
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		cleaned = "-" + cleaned[1:len(cleaned)-1]
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0.0
	}
	f, _ := d.Float64()
	return f
}

// RoundKey formats an amount to two decimal places for use in dedup keys,
// matching round(amount, 2) semantics.
func RoundKey(amount float64) string {
	return decimal.NewFromFloat(amount).Round(2).StringFixed(2)
}

// placeholder is substituted for blank or meaningless column labels.
const placeholder = "column"

// NormalizeHeaders returns unique, non-empty column labels in the original
// order. Blank, "none" and "nan" labels become a placeholder; repeated base
// names get _1, _2, ... suffixes in first-seen order, bumping past labels
// that already exist in the input. Output length always equals input length.
func NormalizeHeaders(labels []string) []string {
	counts := make(map[string]int, len(labels))
	used := make(map[string]bool, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		base := normalizeLabel(l)
		name := base
		n := counts[base]
		if n > 0 || used[base] {
			for {
				name = fmt.Sprintf("%s_%d", base, n)
				if !used[name] {
					break
				}
				n++
			}
		}
		counts[base] = n + 1
		used[name] = true
		out = append(out, name)
	}
	return out
}

func normalizeLabel(l string) string {
	name := strings.TrimSpace(l)
	if name == "" || strings.EqualFold(name, "none") || strings.EqualFold(name, "nan") {
		return placeholder
	}
	return name
}

// DateHint selects the layout ordering for ambiguous numeric dates.
type DateHint int

const (
	// DateGeneric prefers month-first for ambiguous layouts (processor
	// exports are typically ISO or US-ordered).
	DateGeneric DateHint = iota
	// DateDayFirst prefers day-first layouts (Nigerian bank statements).
	DateDayFirst
	// DateFCMB tries the "02 Jan 2006" statement format before the
	// day-first list.
	DateFCMB
)

// Layout lists are ordered: the first successful parse wins, so more specific
// layouts (with time-of-day) come before their date-only prefixes.
var genericLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"02 Jan 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
	"2006/01/02",
}

var dayFirstLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"02-01-2006 15:04:05",
	"02-01-2006",
	"02.01.2006",
	"2/1/2006",
	"02 Jan 2006 15:04:05",
	"02 Jan 2006",
	"2 Jan 2006",
	"02-Jan-2006",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/06",
	"02-01-06",
}

// ParseDate parses a statement date cell. Values that survive Excel's
// general format as day serials (e.g. "45678") are converted; otherwise the
// hint's layout list is tried in order. ok is false when nothing matches.
func ParseDate(value string, hint DateHint) (time.Time, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, false
	}
	if t, ok := fromExcelSerial(v); ok {
		return t, true
	}
	var layouts []string
	switch hint {
	case DateDayFirst:
		layouts = dayFirstLayouts
	case DateFCMB:
		layouts = append([]string{"02 Jan 2006", "2 Jan 2006"}, dayFirstLayouts...)
	default:
		layouts = genericLayouts
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// excelEpoch is the day-zero of Excel's 1900 date system, shifted for the
// bogus 1900 leap day.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// fromExcelSerial converts a bare numeric cell into a date when it falls in
// the plausible serial range (1990..2100 roughly). Spreadsheet reads hand
// these through when a date cell carries the general number format.
func fromExcelSerial(v string) (time.Time, bool) {
	serial, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return time.Time{}, false
	}
	if serial < 32874 || serial > 73415 {
		return time.Time{}, false
	}
	days := int(serial)
	frac := serial - float64(days)
	t := excelEpoch.AddDate(0, 0, days)
	t = t.Add(time.Duration(frac * float64(24*time.Hour)))
	return t, true
}

// CollapseSpaces squeezes runs of whitespace into single spaces and trims.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate caps s at max runes, appending an ellipsis marker when it cuts.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
