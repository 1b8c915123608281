package narration

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

var (
	providusFromRe = regexp.MustCompile(`(?i)from\s+(.*)`)
	letterRe       = regexp.MustCompile(`[A-Za-z]`)
	numericOnlyRe  = regexp.MustCompile(`^[\d\s]+$`)
	tokenDashRe    = regexp.MustCompile(`\s+-\s+|\s*-\s*`)
	tailSplitRe    = regexp.MustCompile(`\s-\s|[-]|;`)
	nonAlphaRe     = regexp.MustCompile(`[^A-Za-z\s]`)
)

// providusNoise rejects a from-tail candidate outright; these are
// system words, never payers.
var providusNoise = []string{"providus", "transfer", "credit", "reversal", "charge", "fee", "branch"}

// providusScrub blanks a finished name that still smells like bank
// plumbing. Better no name than a fake customer.
var providusScrub = []string{"providus", "bank", "reversal", "charge", "fee"}

// Providus resolves the payer from a Providus narration. The tail after
// "from" is mined first; when that yields nothing usable, the longest
// capitalized word run anywhere in the text is taken instead. An empty
// name means the narration had no usable payer at all.
func (e *Extractor) Providus(text string) Identity {
	if text == "" {
		return Identity{}
	}
	id := Identity{Email: emailRe.FindString(text)}

	name := ""
	if m := providusFromRe.FindStringSubmatch(text); m != nil {
		candidate := squeezeRe.ReplaceAllString(e.fromTail(m[1]), " ")
		if candidate != "" && !containsAnyFold(candidate, providusNoise) &&
			!e.banks.IsKnown(candidate) && letterRe.MatchString(candidate) {
			name = candidate
		}
	}
	if name == "" {
		name = longestCapitalRun(text)
	}

	name = strings.TrimSpace(name)
	if isShouting(name) {
		name = titleCase(name)
	}
	if runeLen(name) > 80 {
		name = firstRunes(name, 80)
	}
	if containsAnyFold(name, providusScrub) {
		name = ""
	}
	id.Name = name
	return id
}

// fromTail picks the payer out of everything after "from". Slash-
// delimited tails hold the name in the first token that has letters,
// is not a bare reference, and is not a bank; plain tails end at the
// first dash or semicolon.
func (e *Extractor) fromTail(tail string) string {
	if !strings.Contains(tail, "/") {
		return strings.TrimSpace(tailSplitRe.Split(tail, 2)[0])
	}

	var tokens []string
	for _, t := range strings.Split(tail, "/") {
		if t = strings.TrimSpace(t); t != "" {
			tokens = append(tokens, t)
		}
	}
	for _, token := range tokens {
		if !letterRe.MatchString(token) || numericOnlyRe.MatchString(token) {
			continue
		}
		// Company names often carry a dashed suffix; keep the head.
		head := strings.TrimSpace(tokenDashRe.Split(token, 2)[0])
		if !e.banks.IsKnown(head) {
			return head
		}
	}
	for _, token := range tokens {
		if !e.banks.IsKnown(token) {
			return token
		}
	}
	return ""
}

// longestCapitalRun scans the whole narration for runs of 2-6 words
// that look like a name (Title or ALLCAPS) and returns the one with the
// most letters, preferring the earlier run on ties.
func longestCapitalRun(text string) string {
	tokens := strings.Fields(nonAlphaRe.ReplaceAllString(text, " "))

	var runs []string
	var cur []string
	flush := func() {
		if n := len(cur); n >= 2 && n <= 6 {
			runs = append(runs, strings.Join(cur, " "))
		}
		cur = cur[:0]
	}
	for _, t := range tokens {
		if capitalWord(t) {
			cur = append(cur, t)
		} else {
			flush()
		}
	}
	flush()

	if len(runs) == 0 {
		return ""
	}
	sort.SliceStable(runs, func(i, j int) bool {
		return letterCount(runs[i]) > letterCount(runs[j])
	})
	return runs[0]
}

// capitalWord reports whether a (pure alpha) token is Title case or
// ALLCAPS. Lowercase words break a name run.
func capitalWord(t string) bool {
	runes := []rune(t)
	if len(runes) == 0 || !unicode.IsLetter(runes[0]) {
		return false
	}
	if unicode.IsUpper(runes[0]) {
		rest := runes[1:]
		lower, upper := true, true
		for _, r := range rest {
			if !unicode.IsLower(r) {
				lower = false
			}
			if !unicode.IsUpper(r) {
				upper = false
			}
		}
		return lower || upper
	}
	return false
}

func letterCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}
