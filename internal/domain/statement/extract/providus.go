package extract

import (
	"strings"

	"github.com/koboledger/bankfeed/internal/domain/statement"
	"github.com/koboledger/bankfeed/internal/domain/statement/normalizer"
	"github.com/koboledger/bankfeed/internal/domain/statement/sniffer"
)

// Providus extracts Providus bank statements, typically PDF-derived
// spreadsheets with banner rows, a trailing disclaimer footer, and all
// customer identity buried in the narration column.
type Providus struct {
	deps Deps
}

func (p *Providus) Profile() statement.Profile { return statement.ProfileProvidus }

type providusColumns struct {
	date   string
	credit string
	debit  string
	amount string
	desc   string
}

func mapProvidusColumns(t *statement.Table) providusColumns {
	var c providusColumns
	c.date, _ = findColumn(t, "post date", "value date", "date", "transaction date")
	c.credit, _ = findColumn(t, "credit amount", "credit", "cr")
	c.debit, _ = findColumn(t, "debit amount", "debit", "dr")
	c.amount, _ = findColumn(t, "amount", "transaction amount")
	c.desc, _ = findColumn(t, "transaction details", "narration", "description", "details")
	return c
}

func (c providusColumns) usable() bool {
	return c.date != "" && (c.amount != "" || c.credit != "" || c.debit != "")
}

func (p *Providus) Extract(t *statement.Table, filename string) Result {
	var res Result

	cols := mapProvidusColumns(t)
	if !cols.usable() {
		// The real header row may still be buried under banner rows;
		// recover once and retry before giving up.
		recovered, ok := sniffer.RecoverHeader(t)
		if ok {
			t = recovered
			cols = mapProvidusColumns(t)
		}
		if !cols.usable() {
			res.Note = "missing date or amount columns"
			return res
		}
	}

	rows := t.Len()
	// The last row of a Providus export is a total/disclaimer footer.
	if rows > 1 {
		res.skip(rows-1, statement.SkipFooterRow, "")
		rows--
	}

	for i := 0; i < rows; i++ {
		desc, _ := t.Value(i, cols.desc)
		lowerDesc := strings.ToLower(desc)

		if desc != "" && strings.Contains(lowerDesc, "balance") && strings.Contains(lowerDesc, "b/f") {
			res.skip(i, statement.SkipBalanceRow, desc)
			continue
		}

		// Credits only: outbound debits are not customer payments.
		rawCredit, haveCredit := t.Value(i, cols.credit)
		if cols.credit == "" || !haveCredit {
			res.skip(i, statement.SkipNotCredit, "")
			continue
		}

		rawDate, _ := t.Value(i, cols.date)
		date, dateOK := normalizer.ParseDate(rawDate, normalizer.DateDayFirst)
		if !dateOK {
			res.skip(i, statement.SkipBadDate, rawDate)
			continue
		}

		amount := normalizer.CleanAmount(rawCredit)
		if amount <= 0 {
			res.skip(i, statement.SkipBadAmount, rawCredit)
			continue
		}

		identity := p.deps.Narration.Providus(desc)
		name := identity.Name
		if name == "" {
			name = statement.UnknownCustomer
		}

		channel := ""
		if strings.Contains(lowerDesc, "transfer") || strings.Contains(lowerDesc, "from") {
			channel = "bank_transfer"
		}

		res.Candidates = append(res.Candidates, statement.Candidate{
			Date:            date,
			Amount:          amount,
			CustomerName:    name,
			CustomerEmail:   identity.Email,
			Description:     desc,
			Bank:            "Providus Bank",
			CustomerBank:    p.deps.Banks.FromNarration(desc),
			Channel:         channel,
			Status:          "success",
			GatewayResponse: desc,
			FileSource:      filename,
		})
	}
	return res
}
