package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows ...[]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestLoad_Excel(t *testing.T) {
	data := workbook(t,
		[]interface{}{"Tran Date", "Transaction Details", "Deposit"},
		[]interface{}{"02 Jan 2025", "NIP FRM JOHN SMITH-001", "5,000.00"},
		[]interface{}{"03 Jan 2025", "SMS CHARGE", "50.00"},
	)

	tbl, err := Load(data, "fcmb_jan.xlsx")

	require.NoError(t, err)
	assert.Equal(t, []string{"Tran Date", "Transaction Details", "Deposit"}, tbl.Columns)
	require.Equal(t, 2, tbl.Len())
	got, ok := tbl.Value(0, "Deposit")
	assert.True(t, ok)
	assert.Equal(t, "5,000.00", got)
}

func TestExcel_BannerReadsPositionally(t *testing.T) {
	// A mostly-blank leading row is decoration; all rows come back as
	// data under placeholder labels.
	data := workbook(t,
		[]interface{}{"STATEMENT OF ACCOUNT"},
		[]interface{}{"Transaction Date", "Transaction Details", "Credit Amount", "Debit Amount"},
		[]interface{}{"15/01/2025", "TRF from JOHN", "5,000.00", ""},
	)

	tbl, err := Excel(data, "account_statement.xlsx")

	require.NoError(t, err)
	assert.Equal(t, []string{"column", "column_1", "column_2", "column_3"}, tbl.Columns)
	require.Equal(t, 3, tbl.Len())
	got, ok := tbl.Value(0, "column")
	assert.True(t, ok)
	assert.Equal(t, "STATEMENT OF ACCOUNT", got)
}

func TestExcel_ProvidusFilenameReadsPositionally(t *testing.T) {
	// Providus workbooks are always suspected of banners, even when the
	// first row happens to look like a header.
	data := workbook(t,
		[]interface{}{"Post Date", "Transaction Details", "Credit Amount"},
		[]interface{}{"15/01/2025", "TRF from JOHN", "5,000.00"},
	)

	tbl, err := Excel(data, "providus_jan.xlsx")

	require.NoError(t, err)
	assert.Equal(t, []string{"column", "column_1", "column_2"}, tbl.Columns)
	assert.Equal(t, 2, tbl.Len())
}

func TestExcel_ProvidusBannerCellReadsPositionally(t *testing.T) {
	data := workbook(t,
		[]interface{}{"PROVIDUS BANK PLC", "", "STATEMENT"},
		[]interface{}{"Post Date", "Transaction Details", "Credit Amount"},
	)

	tbl, err := Excel(data, "export.xlsx")

	require.NoError(t, err)
	assert.Equal(t, []string{"column", "column_1", "column_2"}, tbl.Columns)
}

func TestExcel_CleanHeaderStays(t *testing.T) {
	data := workbook(t,
		[]interface{}{"Date", "Narration", "Credit"},
		[]interface{}{"2025-01-15", "inflow", "100"},
	)

	tbl, err := Excel(data, "gtbank.xlsx")

	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Narration", "Credit"}, tbl.Columns)
	assert.Equal(t, 1, tbl.Len())
}

func TestExcel_NotAWorkbook(t *testing.T) {
	_, err := Excel([]byte("not a zip"), "x.xlsx")

	assert.Error(t, err)
}
