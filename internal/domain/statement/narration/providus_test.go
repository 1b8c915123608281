package narration

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractor_Providus(t *testing.T) {
	e := newExtractor()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"slash delimited after bank",
			"NIP Transfer From GTBank/ADEYINKA MICHAEL OLALEKAN/0123456789",
			"Adeyinka Michael Olalekan",
		},
		{
			"bank then dashed payer",
			"FROM WEMA/ JOHNSON OLATUNJI OLADEJI- rent for may",
			"Johnson Olatunji Oladeji",
		},
		{
			"plain tail ends at dash",
			"NEFT CR FROM JOHN DOE - 0123 - ACCESS BANK",
			"John Doe",
		},
		{
			"plain tail ends at semicolon",
			"trf from Chioma Ude;ref 99",
			"Chioma Ude",
		},
		{
			"purely numeric token skipped",
			"Transfer from 0123456789/REF 445/HALIMA BELLO",
			"Ref 445", // first token with letters wins, even a reference
		},
		{
			"capital run fallback",
			"Credit alert ADEBOLA JAMES OKON via NIP",
			"Adebola James Okon",
		},
		{
			"longest run wins",
			"JANE DOE sent MAXIMILIAN ALEXANDER OKONKWO JUNIOR money",
			"Maximilian Alexander Okonkwo Junior",
		},
		{
			"noise candidate rejected then scrubbed",
			"from REVERSAL OF CHARGES/123",
			"",
		},
		{
			"no name at all",
			"pos purchase at mall",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Providus(tt.input)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestExtractor_Providus_Email(t *testing.T) {
	e := newExtractor()

	got := e.Providus("from KEMI ALADE/kemi@mail.ng")
	assert.Equal(t, "Kemi Alade", got.Name)
	assert.Equal(t, "kemi@mail.ng", got.Email)
}

func TestExtractor_Providus_TruncatesWithoutEllipsis(t *testing.T) {
	e := newExtractor()

	long := strings.TrimSpace(strings.Repeat("XY ", 40))
	got := e.Providus("from " + long)
	assert.Len(t, []rune(got.Name), 80)
	assert.False(t, strings.HasSuffix(got.Name, "..."))
}

func TestExtractor_Providus_Empty(t *testing.T) {
	e := newExtractor()

	got := e.Providus("")
	assert.Empty(t, got.Name)
	assert.Empty(t, got.Email)
}
