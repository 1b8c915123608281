package normalizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"plain", "5000", 5000},
		{"decimal", "1234.56", 1234.56},
		{"thousands separators", "1,234,567.89", 1234567.89},
		{"naira glyph", "₦5,000.00", 5000},
		{"ngn code", "NGN 12,500", 12500},
		{"dollar sign", "$99.99", 99.99},
		{"surrounding whitespace", "  2,500.00  ", 2500},
		{"parenthesized negative", "(1,234.50)", -1234.50},
		{"explicit negative", "-750.25", -750.25},
		{"unparsable text", "not a number", 0.0},
		{"empty", "", 0.0},
		{"lone currency glyph", "₦", 0.0},
		{"unbalanced paren", "(1,234.50", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, CleanAmount(tt.input), 1e-9)
		})
	}
}

func TestNormalizeHeaders(t *testing.T) {
	t.Run("suffixes repeated names in order", func(t *testing.T) {
		got := NormalizeHeaders([]string{"name", "name", "name"})
		assert.Equal(t, []string{"name", "name_1", "name_2"}, got)
	})

	t.Run("placeholders for blank and nan labels", func(t *testing.T) {
		got := NormalizeHeaders([]string{"", "nan", "None", "Amount"})
		assert.Equal(t, []string{"column", "column_1", "column_2", "Amount"}, got)
	})

	t.Run("bumps past labels already present", func(t *testing.T) {
		got := NormalizeHeaders([]string{"name", "name_1", "name"})
		assert.Equal(t, []string{"name", "name_1", "name_2"}, got)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		got := NormalizeHeaders([]string{"  Transaction Date  ", "Deposit"})
		assert.Equal(t, []string{"Transaction Date", "Deposit"}, got)
	})

	t.Run("never returns duplicates and preserves length and order", func(t *testing.T) {
		inputs := [][]string{
			{"a", "b", "a", "", "a", "b", "nan", ""},
			{"Date", "date", "Date", "Date"},
			{"", "", "", "", ""},
		}
		for _, labels := range inputs {
			got := NormalizeHeaders(labels)
			require.Len(t, got, len(labels))
			seen := make(map[string]bool)
			for i, label := range got {
				assert.False(t, seen[label], "duplicate label %q", label)
				assert.NotEmpty(t, label)
				seen[label] = true
				// non-repeated originals keep their position's base name
				_ = i
			}
		}
	})
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		hint     DateHint
		expected time.Time
		ok       bool
	}{
		{"iso", "2025-01-15", DateGeneric, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"iso with time", "2025-01-15 14:23:11", DateGeneric, time.Date(2025, 1, 15, 14, 23, 11, 0, time.UTC), true},
		{"fcmb statement format", "02 Jan 2025", DateFCMB, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), true},
		{"day first slash", "15/01/2025", DateDayFirst, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"day first ambiguous", "03/02/2025", DateDayFirst, time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), true},
		{"generic ambiguous is month first", "03/02/2025", DateGeneric, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), true},
		{"garbage", "not a date", DateGeneric, time.Time{}, false},
		{"empty", "", DateDayFirst, time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input, tt.hint)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.True(t, tt.expected.Equal(got), "got %v want %v", got, tt.expected)
			}
		})
	}

	t.Run("excel serial", func(t *testing.T) {
		// 45658 is 2025-01-01 in the 1900 date system
		got, ok := ParseDate("45658", DateDayFirst)
		require.True(t, ok)
		assert.Equal(t, 2025, got.Year())
		assert.Equal(t, time.January, got.Month())
		assert.Equal(t, 1, got.Day())
	})
}

func TestRoundKey(t *testing.T) {
	assert.Equal(t, "5000.00", RoundKey(5000.0))
	assert.Equal(t, "1234.57", RoundKey(1234.5678))
	assert.Equal(t, "-10.50", RoundKey(-10.5))
}

func TestCollapseSpaces(t *testing.T) {
	assert.Equal(t, "JOHN SMITH", CollapseSpaces("  JOHN   SMITH "))
	assert.Equal(t, "", CollapseSpaces("   "))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 80))
	long := ""
	for i := 0; i < 90; i++ {
		long += "a"
	}
	got := Truncate(long, 80)
	assert.Len(t, got, 83)
	assert.Equal(t, "...", got[80:])
}
