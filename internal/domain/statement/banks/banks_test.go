package banks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictionary_MatchFilename(t *testing.T) {
	d := NewDictionary()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain bank name", "gtbank_statement_jan.xlsx", "GTBank"},
		{"short form", "GTB-export-2025.csv", "GTBank"},
		{"two word alias", "Guaranty Trust Statement.xlsx", "GTBank"},
		{"processor", "opay wallet history.csv", "OPay"},
		{"joined header text", "sn transaction date narration fcmb deposit", "FCMB"},
		{"no bank", "statement_final_v2.xlsx", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.MatchFilename(tt.input))
		})
	}
}

func TestDictionary_MatchFilename_Priority(t *testing.T) {
	d := NewDictionary()

	// "access" sits above "fcmb" in the table, so a filename carrying
	// both resolves to the earlier entry.
	assert.Equal(t, "Access Bank", d.MatchFilename("access_to_fcmb_transfers.xlsx"))
}

func TestDictionary_IsKnown(t *testing.T) {
	d := NewDictionary()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"exact alias", "gtbank", true},
		{"exact alias mixed case", "Zenith Bank", true},
		{"alias leading", "zenith bank plc", true},
		{"alias trailing", "transfer zenith", true},
		{"surrounding whitespace", "  fcmb  ", true},
		{"embedded not word aligned", "izenith", false},
		{"customer name", "John Smith", false},
		{"empty", "", false},
		{"whitespace only", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.IsKnown(tt.input))
		})
	}
}

func TestDictionary_FromNarration(t *testing.T) {
	d := NewDictionary()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"from phrase", "Transfer from GTBank/John Smith", "GTBank"},
		{"from phrase two words", "NIP from zenith bank/0123456789", "Zenith Bank"},
		{"alias elsewhere in text", "JOHN SMITH/UBA/REF123", "UBA"},
		{"short form fbn", "mobile trf FBN 0123", "First Bank"},
		{"no bank at all", "POS purchase lagos mall", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.FromNarration(tt.input))
		})
	}
}

func TestDictionary_FromNarration_EarliestAliasWins(t *testing.T) {
	d := NewDictionary()

	// Both gtbank and kuda occur; gtbank sits earlier in the table and
	// must win regardless of position in the text.
	got := d.FromNarration("kuda to gtbank settlement")
	assert.Equal(t, "GTBank", got)
}

func TestDictionary_Closest(t *testing.T) {
	d := NewDictionary()

	t.Run("one edit away", func(t *testing.T) {
		name, ok := d.Closest("zenit")
		require.True(t, ok)
		assert.Equal(t, "Zenith Bank", name)
	})

	t.Run("transposition", func(t *testing.T) {
		name, ok := d.Closest("gtbnak")
		require.True(t, ok)
		assert.Equal(t, "GTBank", name)
	})

	t.Run("too far", func(t *testing.T) {
		_, ok := d.Closest("chase manhattan")
		assert.False(t, ok)
	})

	t.Run("empty", func(t *testing.T) {
		_, ok := d.Closest("")
		assert.False(t, ok)
	})
}
