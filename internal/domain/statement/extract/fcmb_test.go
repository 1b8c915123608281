package extract

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koboledger/bankfeed/internal/domain/statement"
)

var fcmbHeader = []string{"SN", "Tran Date", "Reference", "Transaction Details", "Deposit", "Withdrawal", "Balance"}

func TestFCMB_Extract(t *testing.T) {
	ex := &FCMB{deps: testDeps()}

	tbl := table(fcmbHeader,
		[]string{"1", "02 Jan 2025", "REF001", "NIP FRM JOHN SMITH-0012345678", "5,000.00", "", "105,000.00"},
		[]string{"2", "03 Jan 2025", "REF002", "POS WITHDRAWAL CHG", "", "2,000.00", "103,000.00"},
		[]string{"3", "04 Jan 2025", "", "OPENING BALANCE B/F", "100.00", "", ""},
		[]string{"4", "05 Jan 2025", "", "SMS CHARGE DECEMBER", "50.00", "", ""},
		[]string{"5", "06/01/2025", "REF005", "PAYSTACK SETTLEMENT-BATCH 42", "250,000.00", "", ""},
		[]string{"6", "", "REF006", "NIP FRM ADA OBI-x", "1,000.00", "", ""},
		[]string{"7", "07 Jan 2025", "", "NIP FRM ADA OBI-x", "abc", "", ""},
		[]string{"8", "08 Jan 2025", "REF008", "NIP FRM MARY OKON-via Zenith Bank ref", "7,500.00", "", ""},
	)

	res := ex.Extract(tbl, "fcmb_jan.xlsx")

	require.Empty(t, res.Note)
	require.Len(t, res.Candidates, 3)

	first := res.Candidates[0]
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, 5000.0, first.Amount)
	assert.Equal(t, "John Smith", first.CustomerName)
	assert.Equal(t, "REF001", first.Reference)
	assert.Equal(t, "bank_transfer", first.Channel)
	assert.Equal(t, "FCMB", first.Bank)
	assert.Equal(t, "NIP FRM JOHN SMITH-0012345678", first.Description)
	assert.Equal(t, "success", first.Status)
	assert.Equal(t, "fcmb_jan.xlsx", first.FileSource)

	// Settlements keep the processor as payer; no NIP/TRF wording, so the
	// channel resolves to card.
	settlement := res.Candidates[1]
	assert.Equal(t, "Paystack Settlement-Batch", settlement.CustomerName)
	assert.Equal(t, "card", settlement.Channel)
	assert.Equal(t, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), settlement.Date)
	assert.Equal(t, 250000.0, settlement.Amount)

	third := res.Candidates[2]
	assert.Equal(t, "Mary Okon", third.CustomerName)
	assert.Equal(t, "Zenith Bank", third.CustomerBank)
	assert.Equal(t, "bank_transfer", third.Channel)

	require.Len(t, res.Skips, 5)
	assert.Equal(t, statement.RowSkip{Row: 1, Reason: statement.SkipNotCredit, Detail: ""}, res.Skips[0])
	assert.Equal(t, statement.RowSkip{Row: 2, Reason: statement.SkipBalanceRow, Detail: "opening balance"}, res.Skips[1])
	assert.Equal(t, statement.RowSkip{Row: 3, Reason: statement.SkipSystemCharge, Detail: "sms charge"}, res.Skips[2])
	assert.Equal(t, statement.RowSkip{Row: 5, Reason: statement.SkipBadDate, Detail: ""}, res.Skips[3])
	assert.Equal(t, statement.RowSkip{Row: 6, Reason: statement.SkipBadAmount, Detail: "abc"}, res.Skips[4])
}

func TestFCMB_Extract_ClipsLongDetails(t *testing.T) {
	ex := &FCMB{deps: testDeps()}

	details := strings.Repeat("X", 210)
	tbl := table(fcmbHeader,
		[]string{"1", "02 Jan 2025", "", details, "1,000.00", "", ""},
	)

	res := ex.Extract(tbl, "fcmb.xlsx")

	require.Len(t, res.Candidates, 1)
	assert.Len(t, []rune(res.Candidates[0].Description), 200)
	assert.Len(t, []rune(res.Candidates[0].GatewayResponse), 200)
	assert.Equal(t, statement.UnknownCustomer, res.Candidates[0].CustomerName)
}

func TestFCMB_Extract_EmptyDetails(t *testing.T) {
	ex := &FCMB{deps: testDeps()}

	tbl := table(fcmbHeader,
		[]string{"1", "02 Jan 2025", "", "", "500.00", "", ""},
	)

	res := ex.Extract(tbl, "fcmb.xlsx")

	require.Len(t, res.Candidates, 1)
	got := res.Candidates[0]
	assert.Equal(t, statement.UnknownCustomer, got.CustomerName)
	assert.Empty(t, got.Channel)
	assert.Empty(t, got.CustomerBank)
	assert.Empty(t, got.Description)
}

func TestFCMB_Extract_MissingColumns(t *testing.T) {
	ex := &FCMB{deps: testDeps()}

	tbl := table(
		[]string{"Date", "Amount"},
		[]string{"02 Jan 2025", "100"},
	)

	res := ex.Extract(tbl, "fcmb.xlsx")

	assert.Equal(t, "missing tran date or deposit column", res.Note)
	assert.Empty(t, res.Candidates)
}

func TestFCMB_Extract_RecoversBuriedHeader(t *testing.T) {
	ex := &FCMB{deps: testDeps()}

	tbl := table(make([]string, 6),
		[]string{"FIRST CITY MONUMENT BANK", "", "", "", "", ""},
		[]string{"Account Statement", "", "", "", "", ""},
		[]string{"Period: 01 Jan 2025 - 31 Jan 2025", "", "", "", "", ""},
		[]string{"Transaction Date", "Value Date", "Transaction Details", "Deposit", "Withdrawal", "Current Balance"},
		[]string{"02 Jan 2025", "02 Jan 2025", "NIP FRM JOHN SMITH-0012345678", "5,000.00", "", "105,000.00"},
		[]string{"03 Jan 2025", "03 Jan 2025", "POS WITHDRAWAL CHG", "", "2,000.00", "103,000.00"},
	)

	res := ex.Extract(tbl, "fcmb_banner.xlsx")

	require.Empty(t, res.Note)
	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "John Smith", res.Candidates[0].CustomerName)
	assert.Equal(t, 5000.0, res.Candidates[0].Amount)
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), res.Candidates[0].Date)

	require.Len(t, res.Skips, 1)
	assert.Equal(t, statement.RowSkip{Row: 1, Reason: statement.SkipNotCredit, Detail: ""}, res.Skips[0])
}
