package extract

import (
	"github.com/koboledger/bankfeed/internal/domain/statement"
	"github.com/koboledger/bankfeed/internal/domain/statement/normalizer"
)

// Generic is the fallback for profiles without a dedicated strategy:
// grab anything that looks like a date and an amount, keep the rows
// that parse, and leave identity resolution to a later re-import once
// the format is understood.
type Generic struct {
	Bank string
}

func (g *Generic) Profile() statement.Profile { return statement.ProfileGeneric }

func (g *Generic) Extract(t *statement.Table, filename string) Result {
	var res Result

	dateCol, dateOK := findColumn(t, "date")
	amountCol, amountOK := findColumn(t, "amount", "credit", "debit")
	if !dateOK || !amountOK {
		res.Note = "missing date or amount column"
		return res
	}

	for i := 0; i < t.Len(); i++ {
		rawDate, _ := t.Value(i, dateCol)
		date, ok := normalizer.ParseDate(rawDate, normalizer.DateGeneric)
		if !ok {
			res.skip(i, statement.SkipBadDate, rawDate)
			continue
		}

		rawAmount, _ := t.Value(i, amountCol)
		amount := normalizer.CleanAmount(rawAmount)
		if amount <= 0 {
			res.skip(i, statement.SkipBadAmount, rawAmount)
			continue
		}

		res.Candidates = append(res.Candidates, statement.Candidate{
			Date:         date,
			Amount:       amount,
			CustomerName: statement.UnknownCustomer,
			Bank:         g.Bank,
			Status:       "success",
			FileSource:   filename,
		})
	}
	return res
}
