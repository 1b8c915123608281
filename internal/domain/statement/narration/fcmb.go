package narration

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/koboledger/bankfeed/internal/domain/statement"
)

// fcmbRule is one entry in the FCMB cascade. apply returns the resolved
// name, or "" to hand the narration to the next rule.
type fcmbRule struct {
	name  string
	apply func(e *Extractor, text string) string
}

// fcmbRules is ordered: specific gateway formats first, catch-alls
// last. Adding a rule means deciding where it sits relative to the
// ones that could shadow it.
var fcmbRules = []fcmbRule{
	{"nip-frm", ruleNIPFrm},
	{"trf-from", ruleTRFFrom},
	{"cash-deposit", ruleCashDeposit},
	{"cheque", ruleCheque},
	{"charge-reversal", ruleChargeReversal},
	{"fgsa-for", ruleFGSAFor},
	{"quickteller", ruleQuickTeller},
	{"by-order-of", ruleByOrderOf},
	{"transfer-from", ruleTransferFrom},
	{"mob-prefix", ruleMOBPrefix},
	{"cdb", ruleCDB},
	{"txn-chrg-rvsl", ruleTxnChrgRvsl},
	{"mbanking", ruleMbanking},
	{"nxg", ruleNXG},
	{"fgsa-transfer-to", ruleFGSATransferTo},
	{"cop-frm", ruleCOPFrm},
	{"dated-nip-from", ruleDatedNIPFrom},
	{"fgsa-month", ruleFGSAMonth},
	{"name-to", ruleNameTo},
	{"short-generic", ruleShortGeneric},
}

var (
	nipFrmRe       = regexp.MustCompile(`(?i)NIP\s+FRM\s+([^-/]+)`)
	trfFromAppRe   = regexp.MustCompile(`(?i)TRF\s+From\s+App:[^/]+/(.+)`)
	trfFromRe      = regexp.MustCompile(`(?i)TRF\s+Fro?m\s+([^/]+)`)
	cashDepositRe  = regexp.MustCompile(`(?i)CSH\s+DEPOSIT\s+BY:([^|]+)`)
	chequeRe       = regexp.MustCompile(`(?i)/Chq\d+/(.+)`)
	fgsaForRe      = regexp.MustCompile(`(?i)FGSA(.+?)\s+for\s+`)
	quickTellerRe  = regexp.MustCompile(`(?i)QTMOB.*?TSF\s+To\s+(\d+)`)
	byOrderOfRe    = regexp.MustCompile(`(?i)TRANSFER\s+B/O:\s*(.+)`)
	transferFromRe = regexp.MustCompile(`(?i)Transfer\s+from\s+([^;]+)`)
	mobPrefixRe    = regexp.MustCompile(`(?i)^(.+?)\|MOB:`)
	cdbRe          = regexp.MustCompile(`(?i)CDB\s+(.+?)\s*/\s*\d+`)
	txnChrgRvslRe  = regexp.MustCompile(`(?i)Txn\s+Chrg\s+Rvsl:`)
	mbankingRe     = regexp.MustCompile(`(?i)Mbanking\s+Trf:.*?;;(.+)`)
	nxgFrmRe       = regexp.MustCompile(`(?i)NXG\s*:TRF(.+?)FRM\s+(.+)`)
	nxgDescNameRe  = regexp.MustCompile(`(?i)([A-Z][A-Za-z]+)FRM`)
	nxgBareRe      = regexp.MustCompile(`(?i)NXG\s*:TRF`)
	mobileRefRe    = regexp.MustCompile(`^AT\d+_TRF\|([A-Za-z0-9]+)`)
	mobileHeadRe   = regexp.MustCompile(`^AT\d+_TRF\|`)
	fgsaToRe       = regexp.MustCompile(`(?i)FGSATRANSFER\s+TO\s+(.+)`)
	copFrmRe       = regexp.MustCompile(`(?i)COP\s+FRM\s+(.+)`)
	datedNIPFromRe = regexp.MustCompile(`(?i)\d+[A-Za-z]+\d+\s+NIP_FROM\s+(.+)`)
	fgsaMonthRe    = regexp.MustCompile(`(?i)FGSA[A-Za-z]+\|(.+)`)
	nameToRe       = regexp.MustCompile(`^([A-Z][A-Za-z\s]{2,}?)\s+[Tt][Oo]\s*$`)
)

// mbankingDescWords mark an Mbanking tail as a purchase description
// rather than a sender name.
var mbankingDescWords = []string{"subscrip", "internet", "payment", "renewal", "installation", "wifi"}

// systemWords disqualify a "<NAME> TO" candidate.
var systemWords = []string{"transfer", "deposit", "reversal", "payment"}

// transferHints keep the short-narration fallback away from rows that
// are clearly transfers with a sender some earlier rule should have
// caught.
var transferHints = []string{"nip", "trf", "transfer", "deposit", "from"}

// FCMB resolves the payer from an FCMB transaction-details narration.
// Narrations nothing matches come back as the shared unknown payer so
// the rows still land somewhere queryable.
func (e *Extractor) FCMB(text string) Identity {
	if text == "" {
		return Identity{}
	}
	original := strings.TrimSpace(text)

	id := Identity{Email: emailRe.FindString(original)}
	for _, r := range fcmbRules {
		if id.Name = r.apply(e, original); id.Name != "" {
			break
		}
	}
	if id.Name == "" {
		id.Name = statement.UnknownCustomer
	}

	id.Name = squeezeRe.ReplaceAllString(id.Name, " ")
	if isShouting(id.Name) && runeLen(id.Name) > 3 {
		id.Name = titleCase(id.Name)
	}
	if runeLen(id.Name) > 80 {
		id.Name = firstRunes(id.Name, 80) + "..."
	}
	return id
}

// "NIP FRM <NAME>-<description>". Paystack settlements hide the end
// customer, so they pool under one payer.
func ruleNIPFrm(e *Extractor, text string) string {
	m := nipFrmRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	candidate := strings.TrimSpace(m[1])
	if strings.Contains(strings.ToLower(candidate), "paystack") {
		return "Paystack Payment"
	}
	if e.banks.IsKnown(candidate) {
		return ""
	}
	return candidate
}

// "TRF From <NAME>/..." and the app variant "TRF From App:.../<NAME>",
// where the name trails the description instead of leading it.
func ruleTRFFrom(e *Extractor, text string) string {
	if m := trfFromAppRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	m := trfFromRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	candidate := strings.TrimSpace(m[1])
	if e.banks.IsKnown(candidate) || strings.Contains(strings.ToLower(candidate), "app:") {
		return ""
	}
	return candidate
}

// "CSH DEPOSIT BY:<NAME>|<branch>".
func ruleCashDeposit(_ *Extractor, text string) string {
	if m := cashDepositRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// "<BANK>/Chq<number>/<NAME>".
func ruleCheque(_ *Extractor, text string) string {
	if m := chequeRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// Charge reversals carry no payer; they pool under one name so the
// noise is easy to filter in reports.
func ruleChargeReversal(_ *Extractor, text string) string {
	if strings.Contains(text, "Rsvl:") || strings.Contains(text, "Rvsl:") {
		return "Reversal Payments"
	}
	return ""
}

// "FGSA<NAME> for <month>|...".
func ruleFGSAFor(_ *Extractor, text string) string {
	if m := fgsaForRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// "QTMOB/TSF To <account>" keeps the account number as the only stable
// identifier QuickTeller gives us.
func ruleQuickTeller(_ *Extractor, text string) string {
	if m := quickTellerRe.FindStringSubmatch(text); m != nil {
		return "QuickTeller Transfer (" + m[1] + ")"
	}
	return ""
}

// "TRANSFER B/O: <NAME>".
func ruleByOrderOf(_ *Extractor, text string) string {
	if m := byOrderOfRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// "Transfer from <NAME>;<phone>;...".
func ruleTransferFrom(_ *Extractor, text string) string {
	if m := transferFromRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// "<NAME>|MOB: To FCMB|...".
func ruleMOBPrefix(_ *Extractor, text string) string {
	if m := mobPrefixRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// "CDB <NAME> / <account>".
func ruleCDB(_ *Extractor, text string) string {
	if m := cdbRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// Lowercase charge-reversal spellings the substring rule above misses.
func ruleTxnChrgRvsl(_ *Extractor, text string) string {
	if txnChrgRvslRe.MatchString(text) {
		return "Reversal Payments"
	}
	return ""
}

// "Mbanking Trf: <BANK>/<ref>;;<tail>" where the tail is a sender
// name, an NXG transfer, a system reference, or a bare description.
func ruleMbanking(e *Extractor, text string) string {
	m := mbankingRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	candidate := strings.TrimSpace(m[1])
	switch {
	case strings.HasPrefix(strings.ToUpper(candidate), "NXG"):
		return mbankingNXGName(candidate)
	case mobileHeadRe.MatchString(candidate):
		if ref := mobileRefRe.FindStringSubmatch(candidate); ref != nil {
			return "Mobile Transfer " + ref[1]
		}
		return "Mobile Banking Transfer"
	case runeLen(candidate) <= 2:
		return "Mobile Banking Transfer"
	case containsAnyFold(candidate, mbankingDescWords):
		// A description beats nothing; keep it as the payer.
		if runeLen(candidate) <= 30 {
			return titleCase(candidate)
		}
		return "Mobile: " + firstRunes(candidate, 25)
	default:
		return candidate
	}
}

// mbankingNXGName unpicks "NXG :TRF<description>FRM <NAME>" tails where
// the sender may have fused into the description ("AHMEDFRM A").
func mbankingNXGName(candidate string) string {
	m := nxgFrmRe.FindStringSubmatch(candidate)
	if m == nil {
		return "NextGen Transfer"
	}
	desc := strings.TrimSpace(m[1])
	name := strings.TrimSpace(m[2])
	if runeLen(name) > 2 {
		return name
	}
	if dm := nxgDescNameRe.FindStringSubmatch(desc + "FRM"); dm != nil {
		return strings.TrimSpace(dm[1])
	}
	return "NextGen Transfer"
}

// Standalone NXG transfers outside an Mbanking wrapper. Short sender
// fields fall back to capitalized words from the description.
func ruleNXG(_ *Extractor, text string) string {
	if m := nxgFrmRe.FindStringSubmatch(text); m != nil {
		desc := strings.TrimSpace(m[1])
		name := strings.TrimSpace(m[2])
		if runeLen(name) > 2 {
			return name
		}
		var words []string
		for _, w := range strings.Fields(desc) {
			if runeLen(w) > 2 && unicode.IsUpper(firstRune(w)) {
				words = append(words, w)
			}
		}
		if len(words) > 3 {
			words = words[:3]
		}
		if len(words) > 0 {
			return strings.Join(words, " ")
		}
		return "NextGen Transfer"
	}
	if nxgBareRe.MatchString(text) {
		return "NextGen Transfer"
	}
	return ""
}

// "FGSATRANSFER TO <NAME>", the FGSA spelling without a space.
func ruleFGSATransferTo(_ *Extractor, text string) string {
	if m := fgsaToRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// "COP FRM <NAME>", cash on pickup.
func ruleCOPFrm(_ *Extractor, text string) string {
	if m := copFrmRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// "<date> NIP_FROM <NAME>" with the date glued to the front.
func ruleDatedNIPFrom(_ *Extractor, text string) string {
	if m := datedNIPFromRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// "FGSA<month>|<NAME>", the FGSA variant without "for".
func ruleFGSAMonth(_ *Extractor, text string) string {
	if m := fgsaMonthRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// A whole narration of the shape "<NAME> TO" left over from truncated
// exports.
func ruleNameTo(_ *Extractor, text string) string {
	m := nameToRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	candidate := strings.TrimSpace(m[1])
	if containsAnyFold(candidate, systemWords) {
		return ""
	}
	return candidate
}

// Last resort for short narrations: a system reference becomes a
// synthetic payer, capitalized words become a name, and anything else
// is labelled generically rather than dropped.
func ruleShortGeneric(_ *Extractor, text string) string {
	if m := mobileRefRe.FindStringSubmatch(text); m != nil {
		return "Mobile Transfer " + m[1]
	}
	if runeLen(text) >= 30 || containsAnyFold(text, transferHints) {
		return ""
	}
	var words []string
	for _, w := range strings.Fields(text) {
		if unicode.IsUpper(firstRune(w)) && runeLen(w) > 2 {
			words = append(words, w)
		}
	}
	if joined := strings.Join(words, " "); len(words) > 0 && runeLen(joined) > 3 {
		return firstRunes(joined, 50)
	}
	return "Generic Payment (" + firstRunes(text, 20) + ")"
}
