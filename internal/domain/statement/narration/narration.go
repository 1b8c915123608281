// Package narration turns free-text statement narrations into payer
// identities. Each source profile carries its own ordered rule table;
// the first rule to produce a name wins, so newer gateway formats sit
// above the legacy mobile-banking ones they would otherwise shadow.
package narration

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/koboledger/bankfeed/internal/domain/statement/banks"
)

// Identity is the payer resolved from a single narration.
type Identity struct {
	Name  string
	Email string
}

// Extractor runs the per-profile rule tables. Construct once and share;
// it holds no per-call state.
type Extractor struct {
	banks *banks.Dictionary
}

func New(dict *banks.Dictionary) *Extractor {
	return &Extractor{banks: dict}
}

var (
	emailRe   = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	squeezeRe = regexp.MustCompile(`\s{2,}`)
)

// containsAnyFold reports whether the lowercased text contains any of
// the (already lowercase) needles.
func containsAnyFold(text string, needles []string) bool {
	lower := strings.ToLower(text)
	for _, n := range needles {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}

// isShouting reports whether the text has at least one cased letter and
// none of them lowercase. Digits and punctuation do not count.
func isShouting(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// titleCase rewrites SHOUTING narration fragments as display names:
// first letter of each word up, the rest down.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// firstRunes returns at most n runes of s.
func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
