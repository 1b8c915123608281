package extract

import (
	"strings"

	"github.com/koboledger/bankfeed/internal/domain/statement"
	"github.com/koboledger/bankfeed/internal/domain/statement/normalizer"
	"github.com/koboledger/bankfeed/internal/domain/statement/sniffer"
)

// FCMB extracts FCMB account statements: SN, Tran Date, Value Date,
// Reference, Transaction Details, Withdrawal, Deposit, Balance. Credits
// live in the Deposit column and the payer has to be mined out of the
// details text.
type FCMB struct {
	deps Deps
}

func (f *FCMB) Profile() statement.Profile { return statement.ProfileFCMB }

// fcmbBalanceRows and fcmbChargeRows are ledger housekeeping, not
// customer payments.
var fcmbBalanceRows = []string{"opening balance", "closing balance", "balance b/f", "balance c/f"}
var fcmbChargeRows = []string{"emt levy", "sms charge", "cot charge", "stamp duty"}

type fcmbColumns struct {
	date    string
	deposit string
	details string
	ref     string
}

func mapFCMBColumns(t *statement.Table) fcmbColumns {
	var c fcmbColumns
	for _, col := range t.Columns {
		lower := strings.ToLower(strings.TrimSpace(col))
		switch {
		case strings.Contains(lower, "tran date") || strings.Contains(lower, "transaction date"):
			setIfEmpty(&c.date, col)
		case lower == "deposit":
			setIfEmpty(&c.deposit, col)
		case strings.Contains(lower, "transaction details") || strings.Contains(lower, "narration"):
			setIfEmpty(&c.details, col)
		case lower == "reference":
			setIfEmpty(&c.ref, col)
		}
	}
	return c
}

func (f *FCMB) Extract(t *statement.Table, filename string) Result {
	var res Result

	cols := mapFCMBColumns(t)
	if cols.date == "" || cols.deposit == "" {
		recovered, ok := sniffer.RecoverHeader(t)
		if ok {
			t = recovered
			cols = mapFCMBColumns(t)
		}
		if cols.date == "" || cols.deposit == "" {
			res.Note = "missing tran date or deposit column"
			return res
		}
	}

	for i := 0; i < t.Len(); i++ {
		rawDeposit, haveDeposit := t.Value(i, cols.deposit)
		if !haveDeposit {
			res.skip(i, statement.SkipNotCredit, "")
			continue
		}

		amount := normalizer.CleanAmount(rawDeposit)
		if amount <= 0 {
			res.skip(i, statement.SkipBadAmount, rawDeposit)
			continue
		}

		rawDate, haveDate := t.Value(i, cols.date)
		if !haveDate {
			res.skip(i, statement.SkipBadDate, "")
			continue
		}
		date, ok := normalizer.ParseDate(rawDate, normalizer.DateFCMB)
		if !ok {
			res.skip(i, statement.SkipBadDate, rawDate)
			continue
		}

		details, _ := t.Value(i, cols.details)
		lowerDetails := strings.ToLower(details)

		if kw, hit := firstKeyword(lowerDetails, fcmbBalanceRows); hit {
			res.skip(i, statement.SkipBalanceRow, kw)
			continue
		}
		if kw, hit := firstKeyword(lowerDetails, fcmbChargeRows); hit {
			res.skip(i, statement.SkipSystemCharge, kw)
			continue
		}

		identity := f.deps.Narration.FCMB(details)
		name := identity.Name
		if name == "" {
			name = statement.UnknownCustomer
		}

		reference, _ := t.Value(i, cols.ref)

		channel := ""
		switch {
		case strings.Contains(lowerDetails, "nip"):
			channel = "bank_transfer"
		case strings.Contains(lowerDetails, "trf") || strings.Contains(lowerDetails, "transfer"):
			channel = "bank_transfer"
		case strings.Contains(lowerDetails, "paystack"):
			// Paystack settlements arriving through FCMB are card money.
			channel = "card"
		}

		res.Candidates = append(res.Candidates, statement.Candidate{
			Date:            date,
			Amount:          amount,
			CustomerName:    name,
			CustomerEmail:   identity.Email,
			Reference:       reference,
			Description:     clip(details, 200),
			Bank:            "FCMB",
			CustomerBank:    f.deps.Banks.FromNarration(details),
			Channel:         channel,
			Status:          "success",
			GatewayResponse: clip(details, 200),
			FileSource:      filename,
		})
	}
	return res
}

func firstKeyword(text string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return kw, true
		}
	}
	return "", false
}
