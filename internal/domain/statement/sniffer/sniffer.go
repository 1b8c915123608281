// Package sniffer decides which institution produced a statement file
// and repairs exports whose real header row is buried under banner rows.
// Detection is a deterministic rule cascade, not a classifier: the rule
// set has to stay auditable when an operator asks why a file was routed
// to the wrong extractor.
package sniffer

import (
	"strings"

	"github.com/koboledger/bankfeed/internal/domain/statement"
	"github.com/koboledger/bankfeed/internal/domain/statement/banks"
	"github.com/koboledger/bankfeed/internal/domain/statement/normalizer"
)

// processorTokens are filename signals checked before the bank table;
// processor exports are named after the processor, not the bank.
var processorTokens = []struct {
	Token string
	Name  string
}{
	{"paystack", "Paystack"},
	{"providus", "Providus Bank"},
	{"flutterwave", "Flutterwave"},
}

// paystackMarkers identify a Paystack export by its column vocabulary
// when the filename gives nothing away.
var paystackMarkers = []string{"paystack fees", "gateway response", "card type", "transaction id"}

// headerTokens is the vocabulary RecoverHeader scores candidate rows
// against. Substring matching: real exports abbreviate and suffix these
// labels freely.
var headerTokens = []string{
	"transaction date", "actual transaction date", "value date",
	"transaction details", "narration", "description",
	"credit amount", "debit amount", "current balance", "dr/cr",
}

// maxHeaderScan bounds the RecoverHeader scan; banner blocks sit at the
// top of a sheet, never thousands of rows deep.
const maxHeaderScan = 600

// minHeaderScore is how many vocabulary tokens a row must carry before
// it can be a header at all.
const minHeaderScore = 4

// Detect resolves the source profile and display bank for a loaded
// table. Filename wins over column shape: filenames are user-supplied
// and usually accurate, while column markers are the fallback for
// renamed or anonymized files.
func Detect(dict *banks.Dictionary, filename string, columns []string) statement.Detection {
	fn := strings.ToLower(filename)
	for _, p := range processorTokens {
		if strings.Contains(fn, p.Token) {
			return detectionFor(p.Name)
		}
	}
	if name := dict.MatchFilename(fn); name != "" {
		return detectionFor(name)
	}

	lower := make([]string, len(columns))
	for i, c := range columns {
		lower[i] = strings.ToLower(c)
	}
	joined := strings.Join(lower, " ")

	for _, m := range paystackMarkers {
		if strings.Contains(joined, m) {
			return detectionFor("Paystack")
		}
	}
	if strings.Contains(joined, "post date") || strings.Contains(joined, "narration") {
		return detectionFor("Providus Bank")
	}
	if hasExact(lower, "deposit") && hasExact(lower, "withdrawal") && hasExact(lower, "transaction details") {
		return detectionFor("FCMB")
	}
	return detectionFor("Unknown Bank")
}

// detectionFor routes a display name onto the extraction profile that
// handles it. Names without a dedicated extractor (Flutterwave, plain
// banks, Unknown Bank) extract generically under that name.
func detectionFor(bank string) statement.Detection {
	lower := strings.ToLower(bank)
	switch {
	case strings.Contains(lower, "paystack"):
		return statement.Detection{Profile: statement.ProfilePaystack, Bank: bank}
	case strings.Contains(lower, "providus"):
		return statement.Detection{Profile: statement.ProfileProvidus, Bank: bank}
	case strings.Contains(lower, "fcmb"):
		return statement.Detection{Profile: statement.ProfileFCMB, Bank: bank}
	default:
		return statement.Detection{Profile: statement.ProfileGeneric, Bank: bank}
	}
}

func hasExact(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}

// RecoverHeader scans for the real header row in a banner-wrapped
// export and rebuilds the table from it. A row qualifies when it
// carries at least minHeaderScore vocabulary tokens AND names both a
// transaction date and transaction details column; the conjunctive
// guard keeps body rows that merely mention a few tokens from being
// promoted. Returns the input unchanged with ok=false when no row
// qualifies; extraction downstream then fails per-column instead.
func RecoverHeader(t *statement.Table) (*statement.Table, bool) {
	limit := len(t.Rows)
	if limit > maxHeaderScan {
		limit = maxHeaderScan
	}

	headerRow := -1
	for i := 0; i < limit; i++ {
		cells := make([]string, len(t.Rows[i]))
		for j, c := range t.Rows[i] {
			cells[j] = strings.ToLower(strings.TrimSpace(c))
		}

		score := 0
		for _, w := range headerTokens {
			if anyCellContains(cells, w) {
				score++
			}
		}
		if score >= minHeaderScore &&
			anyCellContains(cells, "transaction date") &&
			anyCellContains(cells, "transaction details") {
			headerRow = i
			break
		}
	}
	if headerRow < 0 {
		return t, false
	}

	headers := make([]string, len(t.Rows[headerRow]))
	for j, c := range t.Rows[headerRow] {
		headers[j] = strings.TrimSpace(c)
	}
	rebuilt := statement.NewTable(normalizer.NormalizeHeaders(headers), t.Rows[headerRow+1:])
	rebuilt.DropEmptyColumns()
	return rebuilt, true
}

func anyCellContains(cells []string, needle string) bool {
	for _, c := range cells {
		if strings.Contains(c, needle) {
			return true
		}
	}
	return false
}
