package extract

import (
	"strings"

	"github.com/koboledger/bankfeed/internal/domain/statement"
	"github.com/koboledger/bankfeed/internal/domain/statement/normalizer"
)

// Paystack extracts processor exports. These are the friendliest input
// the pipeline sees: structured customer fields, an explicit status,
// and payment metadata, so no narration parsing is needed.
type Paystack struct {
	deps Deps
}

func (p *Paystack) Profile() statement.Profile { return statement.ProfilePaystack }

// paystackColumns is the field → source-column mapping for one table.
// An empty string means the export did not carry the field.
type paystackColumns struct {
	name    string
	email   string
	date    string
	amount  string
	status  string
	ref     string
	channel string
	bank    string
	card    string
	gateway string
	desc    string
}

func mapPaystackColumns(t *statement.Table) paystackColumns {
	var c paystackColumns
	for _, col := range t.Columns {
		lower := strings.ToLower(col)
		switch {
		case strings.Contains(lower, "fullname") || strings.Contains(lower, "full name"):
			setIfEmpty(&c.name, col)
		case strings.Contains(lower, "email") && strings.Contains(lower, "customer"):
			setIfEmpty(&c.email, col)
		case strings.Contains(lower, "transaction date"):
			setIfEmpty(&c.date, col)
		case strings.Contains(lower, "amount") && strings.Contains(lower, "paid"):
			setIfEmpty(&c.amount, col)
		case lower == "status":
			setIfEmpty(&c.status, col)
		case lower == "reference":
			setIfEmpty(&c.ref, col)
		case lower == "channel":
			setIfEmpty(&c.channel, col)
		case strings.Contains(lower, "card bank"):
			setIfEmpty(&c.bank, col)
		case strings.Contains(lower, "card type"):
			setIfEmpty(&c.card, col)
		case strings.Contains(lower, "gateway response"):
			setIfEmpty(&c.gateway, col)
		case strings.Contains(lower, "description") || strings.Contains(lower, "narration"):
			setIfEmpty(&c.desc, col)
		}
	}
	return c
}

func (p *Paystack) Extract(t *statement.Table, filename string) Result {
	var res Result

	cols := mapPaystackColumns(t)
	if cols.date == "" || cols.amount == "" {
		res.Note = "missing transaction date or amount paid column"
		return res
	}

	for i := 0; i < t.Len(); i++ {
		if cols.status != "" {
			status, ok := t.Value(i, cols.status)
			if !ok || !strings.EqualFold(status, "success") {
				res.skip(i, statement.SkipFailedStatus, status)
				continue
			}
		}

		rawDate, _ := t.Value(i, cols.date)
		date, ok := normalizer.ParseDate(rawDate, normalizer.DateGeneric)
		if !ok {
			res.skip(i, statement.SkipBadDate, rawDate)
			continue
		}

		rawAmount, _ := t.Value(i, cols.amount)
		amount := normalizer.CleanAmount(rawAmount)
		if amount <= 0 {
			res.skip(i, statement.SkipBadAmount, rawAmount)
			continue
		}

		name, _ := t.Value(i, cols.name)
		if name == "" {
			name = statement.UnknownCustomer
		}

		cand := statement.Candidate{
			Date:         date,
			Amount:       amount,
			CustomerName: name,
			Bank:         "Paystack",
			Status:       "success",
			FileSource:   filename,
		}
		cand.CustomerEmail, _ = t.Value(i, cols.email)
		cand.Reference, _ = t.Value(i, cols.ref)
		cand.Channel, _ = t.Value(i, cols.channel)
		cand.CustomerBank, _ = t.Value(i, cols.bank)
		cand.CardType, _ = t.Value(i, cols.card)
		cand.GatewayResponse, _ = t.Value(i, cols.gateway)
		cand.Description, _ = t.Value(i, cols.desc)
		if status, ok := t.Value(i, cols.status); ok {
			cand.Status = status
		}

		res.Candidates = append(res.Candidates, cand)
	}
	return res
}
