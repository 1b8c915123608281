// Package extract maps raw statement tables onto transaction
// candidates, one strategy per source profile. Every extractor applies
// the same discipline: resolve columns by case-insensitive substring
// match, filter rows the profile cannot vouch for, and record a skip
// reason for every row it drops so an import is explainable afterwards.
package extract

import (
	"strings"

	"github.com/koboledger/bankfeed/internal/domain/statement"
	"github.com/koboledger/bankfeed/internal/domain/statement/banks"
	"github.com/koboledger/bankfeed/internal/domain/statement/narration"
)

// Deps carries the shared collaborators profile extractors draw on.
type Deps struct {
	Banks     *banks.Dictionary
	Narration *narration.Extractor
}

// Result is what one extractor produced from one table: the surviving
// candidates, a skip record per dropped row, and a note when the table
// was structurally unusable (required columns missing).
type Result struct {
	Candidates []statement.Candidate
	Skips      []statement.RowSkip
	Note       string
}

func (r *Result) skip(row int, reason statement.SkipReason, detail string) {
	r.Skips = append(r.Skips, statement.RowSkip{Row: row, Reason: reason, Detail: detail})
}

// Extractor turns a loaded table into transaction candidates.
type Extractor interface {
	Profile() statement.Profile
	Extract(t *statement.Table, filename string) Result
}

// ForDetection returns the extractor handling the detected profile.
// Profiles without a dedicated strategy extract generically under the
// detected bank name.
func ForDetection(det statement.Detection, deps Deps) Extractor {
	switch det.Profile {
	case statement.ProfilePaystack:
		return &Paystack{deps: deps}
	case statement.ProfileProvidus:
		return &Providus{deps: deps}
	case statement.ProfileFCMB:
		return &FCMB{deps: deps}
	default:
		return &Generic{Bank: det.Bank}
	}
}

// findColumn returns the first column (in table order) whose lowercased
// label contains any of the keywords.
func findColumn(t *statement.Table, keywords ...string) (string, bool) {
	for _, col := range t.Columns {
		lower := strings.ToLower(strings.TrimSpace(col))
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return col, true
			}
		}
	}
	return "", false
}

// setIfEmpty assigns col to *dst unless an earlier column already
// claimed the field.
func setIfEmpty(dst *string, col string) {
	if *dst == "" {
		*dst = col
	}
}

// clip bounds free text carried into a candidate; statement exports
// occasionally smuggle whole pages into a details cell.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
