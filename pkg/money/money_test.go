package money

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		kobo int64
		want int64
	}{
		{"positive kobo", 1234, 1234},
		{"zero", 0, 0},
		{"negative kobo", -5000, -5000},
		{"large amount", 999999999, 999999999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.kobo)
			assert.Equal(t, tt.want, m.Kobo())
		})
	}
}

func TestNewFromFloat(t *testing.T) {
	tests := []struct {
		name  string
		naira float64
		want  int64
	}{
		{"simple decimal", 12.34, 1234},
		{"whole number", 100.00, 10000},
		{"zero", 0.0, 0},
		{"float drift case", 4.35, 435}, // 4.35*100 is 434.99... in binary
		{"statement amount", 1234.56, 123456},
		{"rounding", 12.345, 1235},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewFromFloat(tt.naira)
			assert.Equal(t, tt.want, m.Kobo())
		})
	}
}

func TestNewFromDecimal(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   int64
	}{
		{"precise decimal", "123.45", 12345},
		{"many decimals", "99.999", 10000},
		{"whole number", "500", 50000},
		{"negative", "-25.50", -2550},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.amount)
			require.NoError(t, err)
			m := NewFromDecimal(d)
			assert.Equal(t, tt.want, m.Kobo())
		})
	}
}

func TestSum(t *testing.T) {
	total := Sum([]float64{100.10, 200.20, 0, 0.01})
	assert.Equal(t, int64(30031), total.Kobo())
	assert.Equal(t, "₦300.31", total.Display())

	assert.True(t, Sum(nil).IsZero())
}

func TestAdd_NilSafe(t *testing.T) {
	var nilMoney *Money

	assert.Equal(t, int64(100), nilMoney.Add(New(100)).Kobo())
	assert.Equal(t, int64(100), New(100).Add(nil).Kobo())
	assert.True(t, nilMoney.Add(nil).IsZero())
	assert.Equal(t, int64(300), New(100).Add(New(200)).Kobo())
}

func TestZero(t *testing.T) {
	m := Zero()
	assert.True(t, m.IsZero())
	assert.False(t, m.IsPositive())
	assert.Equal(t, int64(0), m.Kobo())
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		name string
		m    *Money
		want string
	}{
		{"thousands", New(123456), "₦1,234.56"},
		{"zero", Zero(), "₦0.00"},
		{"nil", nil, "₦0.00"},
		{"large", NewFromFloat(250000), "₦250,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.m.Display())
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "1234.56", New(123456).String())
	assert.Equal(t, "10.00", New(1000).String())
	assert.Equal(t, "0.00", Zero().String())
}

func TestToFloat64(t *testing.T) {
	assert.InDelta(t, 1234.56, New(123456).ToFloat64(), 0.001)
}

func TestGenerator_Deposits(t *testing.T) {
	g := NewTestDataGeneratorWithSeed(42)

	deposits := g.Deposits(20)
	require.Len(t, deposits, 20)

	for _, d := range deposits {
		assert.NotEmpty(t, d.Payer)
		assert.NotEmpty(t, d.Narration)
		assert.NotEmpty(t, d.Bank)
		assert.True(t, d.Amount.IsPositive())
		assert.GreaterOrEqual(t, d.Amount.Kobo(), int64(50_000))
		assert.LessOrEqual(t, d.Amount.Kobo(), int64(50_000_000))
		assert.True(t, strings.HasPrefix(d.Reference, "REF"))
	}
}

func TestGenerator_Reproducible(t *testing.T) {
	a := NewTestDataGeneratorWithSeed(7).Deposit()
	b := NewTestDataGeneratorWithSeed(7).Deposit()

	assert.Equal(t, a.Narration, b.Narration)
	assert.Equal(t, a.Amount.Kobo(), b.Amount.Kobo())
	assert.Equal(t, a.Reference, b.Reference)
}

func TestGenerator_NarrationShapes(t *testing.T) {
	g := NewTestDataGeneratorWithSeed(1)

	assert.Contains(t, g.NIPNarration("Ada Obi"), "NIP FRM ADA OBI-")
	assert.Contains(t, g.NIPNarrationVia("Ada Obi", "Zenith Bank"), "via Zenith Bank ref")
	assert.Contains(t, g.SettlementNarration(), "PAYSTACK SETTLEMENT-BATCH")
}
