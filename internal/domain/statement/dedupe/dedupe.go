// Package dedupe drops repeated rows inside a single statement file.
// Bank portals double rows when a statement is regenerated or a page
// boundary repeats; the first occurrence wins. Candidates from
// different files are never compared against each other.
package dedupe

import (
	"strings"

	"github.com/koboledger/bankfeed/internal/domain/statement"
	"github.com/koboledger/bankfeed/internal/domain/statement/normalizer"
)

// KeyFunc renders the identity a profile considers "the same row".
type KeyFunc func(c statement.Candidate) string

// ForProfile returns the dedup key for a profile, or nil when the
// profile's exports already carry unique references per row and no
// dedup pass is wanted.
func ForProfile(p statement.Profile) KeyFunc {
	switch p {
	case statement.ProfileProvidus:
		return providusKey
	case statement.ProfileFCMB:
		return fcmbKey
	default:
		return nil
	}
}

func providusKey(c statement.Candidate) string {
	return strings.Join([]string{
		c.Date.Format("2006-01-02"),
		normalizer.RoundKey(c.Amount),
		strings.ToLower(strings.TrimSpace(c.Description)),
	}, "|")
}

// fcmbKey folds the reference in: FCMB statements repeat date, amount
// and details across genuinely distinct NIP legs, and only the
// reference tells those apart.
func fcmbKey(c statement.Candidate) string {
	return strings.Join([]string{
		c.Date.Format("2006-01-02"),
		normalizer.RoundKey(c.Amount),
		strings.TrimSpace(c.Reference),
		strings.ToLower(strings.TrimSpace(c.Description)),
	}, "|")
}

// Apply removes duplicate candidates, keeping the first occurrence of
// each key. Profiles without a key pass through untouched. Skip rows
// index into the input slice; the detail carries the colliding key.
func Apply(p statement.Profile, cands []statement.Candidate) ([]statement.Candidate, []statement.RowSkip) {
	key := ForProfile(p)
	if key == nil || len(cands) == 0 {
		return cands, nil
	}

	kept := make([]statement.Candidate, 0, len(cands))
	var skips []statement.RowSkip
	seen := make(map[string]bool, len(cands))
	for i, c := range cands {
		k := key(c)
		if seen[k] {
			skips = append(skips, statement.RowSkip{Row: i, Reason: statement.SkipDuplicate, Detail: k})
			continue
		}
		seen[k] = true
		kept = append(kept, c)
	}
	return kept, skips
}
