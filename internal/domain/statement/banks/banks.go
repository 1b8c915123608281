// Package banks resolves Nigerian bank and processor names from
// filenames and transaction narrations. It carries two ordered alias
// tables: a coarse one used to brand a whole statement file, and a
// finer one used to spot counterparty banks inside narration text.
// Alias order matters; earlier entries win when several match.
package banks

import (
	"regexp"
	"strings"

	"github.com/cloudflare/ahocorasick"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// alias pairs a lowercase needle with the canonical display name it
// resolves to.
type alias struct {
	Key  string
	Name string
}

// fileAliases brands statement files by substrings of the filename or
// header row. Order encodes priority.
var fileAliases = []alias{
	{"gtbank", "GTBank"},
	{"gtb", "GTBank"},
	{"guaranty trust", "GTBank"},
	{"access", "Access Bank"},
	{"zenith", "Zenith Bank"},
	{"first bank", "First Bank"},
	{"firstbank", "First Bank"},
	{"uba", "UBA"},
	{"united bank", "UBA"},
	{"fidelity", "Fidelity Bank"},
	{"union", "Union Bank"},
	{"sterling", "Sterling Bank"},
	{"stanbic", "Stanbic IBTC"},
	{"standard chartered", "Standard Chartered"},
	{"wema", "WEMA Bank"},
	{"unity", "Unity Bank"},
	{"keystone", "Keystone Bank"},
	{"fcmb", "FCMB"},
	{"ecobank", "Ecobank"},
	{"polaris", "Polaris Bank"},
	{"kuda", "Kuda Bank"},
	{"opay", "OPay"},
	{"palmpay", "PalmPay"},
	{"carbon", "Carbon"},
	{"rubies", "Rubies Bank"},
}

// narrationAliases resolves counterparty banks mentioned inside free
// text. Longer forms sit next to their short forms so either spelling
// lands on the same canonical name.
var narrationAliases = []alias{
	{"gtbank", "GTBank"},
	{"gt bank", "GTBank"},
	{"guaranty trust", "GTBank"},
	{"access", "Access Bank"},
	{"access bank", "Access Bank"},
	{"zenith", "Zenith Bank"},
	{"zenith bank", "Zenith Bank"},
	{"first bank", "First Bank"},
	{"firstbank", "First Bank"},
	{"fbn", "First Bank"},
	{"uba", "UBA"},
	{"united bank", "UBA"},
	{"fidelity", "Fidelity Bank"},
	{"fidelity bank", "Fidelity Bank"},
	{"union", "Union Bank"},
	{"union bank", "Union Bank"},
	{"stanbic", "Stanbic IBTC"},
	{"stanbic ibtc", "Stanbic IBTC"},
	{"sterling", "Sterling Bank"},
	{"sterling bank", "Sterling Bank"},
	{"wema", "Wema Bank"},
	{"wema bank", "Wema Bank"},
	{"polaris", "Polaris Bank"},
	{"polaris bank", "Polaris Bank"},
	{"ecobank", "Ecobank"},
	{"fcmb", "FCMB"},
	{"opay", "OPay"},
	{"kuda", "Kuda Bank"},
	{"kuda bank", "Kuda Bank"},
	{"palmpay", "PalmPay"},
}

// fromPattern captures the word run after "from" in a narration, up to
// the first separator. The candidate is then checked against the alias
// table before falling back to a whole-text scan.
var fromPattern = regexp.MustCompile(`from\s+([a-z][a-z\s]*?)[\s/\-]`)

// Dictionary answers bank-name questions against the two alias tables.
// It is immutable after construction and safe for concurrent use.
type Dictionary struct {
	file      []alias
	narration []alias
	matcher   *ahocorasick.Matcher
}

// NewDictionary builds the matcher over the narration aliases. The
// Aho-Corasick automaton lets a whole narration be scanned once instead
// of per-alias.
func NewDictionary() *Dictionary {
	patterns := make([][]byte, len(narrationAliases))
	for i, a := range narrationAliases {
		patterns[i] = []byte(a.Key)
	}
	return &Dictionary{
		file:      fileAliases,
		narration: narrationAliases,
		matcher:   ahocorasick.NewMatcher(patterns),
	}
}

// MatchFilename resolves a statement's bank from its filename or a
// joined header row. Returns "" when nothing matches.
func (d *Dictionary) MatchFilename(name string) string {
	lower := strings.ToLower(name)
	for _, a := range d.file {
		if strings.Contains(lower, a.Key) {
			return a.Name
		}
	}
	return ""
}

// IsKnown reports whether text is a bank name rather than a customer
// name. It accepts an exact alias, an alias leading the text, or an
// alias trailing it, so "zenith bank plc" and "transfer zenith" both
// count while "izenith" does not.
func (d *Dictionary) IsKnown(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return false
	}
	for _, a := range d.narration {
		if t == a.Key || strings.HasPrefix(t, a.Key+" ") || strings.HasSuffix(t, " "+a.Key) {
			return true
		}
	}
	return false
}

// FromNarration pulls the counterparty bank out of a narration. The
// phrase after "from" is tried against the alias table first; failing
// that the whole text is scanned and the earliest table entry that
// occurs anywhere wins. Returns "" when no alias is present.
func (d *Dictionary) FromNarration(text string) string {
	lower := strings.ToLower(text)

	if m := fromPattern.FindStringSubmatch(lower); m != nil {
		candidate := m[1]
		for _, a := range d.narration {
			if strings.Contains(candidate, a.Key) {
				return a.Name
			}
		}
	}

	hits := d.matcher.Match([]byte(lower))
	if len(hits) == 0 {
		return ""
	}
	best := hits[0]
	for _, h := range hits[1:] {
		if h < best {
			best = h
		}
	}
	return d.narration[best].Name
}

// Closest suggests the nearest alias for a token that failed IsKnown,
// for diagnostics only. A suggestion is returned when some alias is
// within two edits; extraction decisions never depend on it.
func (d *Dictionary) Closest(token string) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(token))
	if t == "" {
		return "", false
	}
	bestName := ""
	bestDist := 3
	for _, a := range d.narration {
		if dist := fuzzy.LevenshteinDistance(t, a.Key); dist < bestDist {
			bestDist = dist
			bestName = a.Name
		}
	}
	return bestName, bestName != ""
}
