package bundle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	quotemodels "underwriter/internal/quote/models"
	"underwriter/internal/sign/models"
)

func quotesOf(t *testing.T, kinds ...quotemodels.DataKind) []*quotemodels.Quote {
	t.Helper()
	out := make([]*quotemodels.Quote, 0, len(kinds))
	for _, k := range kinds {
		q, err := quotemodels.NewQuote(quotemodels.NewQuoteParams{Kind: k, Now: time.Now()})
		require.NoError(t, err)
		out = append(out, q)
	}
	return out
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		kinds []quotemodels.DataKind
		want  models.FailureCode
	}{
		{"empty", nil, models.CodeEmptyListOfQuotes},
		{"swedish apartment alone", []quotemodels.DataKind{quotemodels.KindSwedishApartment}, ""},
		{"swedish house alone", []quotemodels.DataKind{quotemodels.KindSwedishHouse}, ""},
		{"two swedish quotes", []quotemodels.DataKind{quotemodels.KindSwedishApartment, quotemodels.KindSwedishHouse}, models.CodeQuotesCanNotBeBundled},
		{"norwegian pair", []quotemodels.DataKind{quotemodels.KindNorwegianTravel, quotemodels.KindNorwegianHomeContents}, ""},
		{"norwegian home contents alone", []quotemodels.DataKind{quotemodels.KindNorwegianHomeContents}, models.CodeSingleQuoteCannotBeAlone},
		{"norwegian duplicate", []quotemodels.DataKind{quotemodels.KindNorwegianTravel, quotemodels.KindNorwegianTravel}, models.CodeQuotesCanNotBeBundled},
		{"danish home contents and accident", []quotemodels.DataKind{quotemodels.KindDanishHomeContents, quotemodels.KindDanishAccident}, ""},
		{"danish home contents and travel", []quotemodels.DataKind{quotemodels.KindDanishTravel, quotemodels.KindDanishHomeContents}, ""},
		{"danish three way", []quotemodels.DataKind{quotemodels.KindDanishTravel, quotemodels.KindDanishAccident, quotemodels.KindDanishHomeContents}, ""},
		{"danish accident alone", []quotemodels.DataKind{quotemodels.KindDanishAccident}, models.CodeSingleQuoteCannotBeAlone},
		{"danish accident and travel", []quotemodels.DataKind{quotemodels.KindDanishAccident, quotemodels.KindDanishTravel}, models.CodeQuotesCanNotBeBundled},
		{"mixed markets", []quotemodels.DataKind{quotemodels.KindNorwegianHomeContents, quotemodels.KindDanishTravel}, models.CodeQuotesCanNotBeBundled},
		{"swedish with norwegian", []quotemodels.DataKind{quotemodels.KindSwedishApartment, quotemodels.KindNorwegianTravel}, models.CodeQuotesCanNotBeBundled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(quotesOf(t, tt.kinds...))
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Code)
			assert.NotEmpty(t, got.Message)
		})
	}
}

func TestValidateDoesNotReorderInput(t *testing.T) {
	quotes := quotesOf(t, quotemodels.KindNorwegianTravel, quotemodels.KindNorwegianHomeContents)
	require.Nil(t, Validate(quotes))
	assert.Equal(t, "NORWEGIAN_TRAVEL,NORWEGIAN_HOME_CONTENTS", Describe(quotes))
}
