// Package bundle decides which sets of quotes may be signed together.
package bundle

import (
	"slices"
	"strings"

	quotemodels "underwriter/internal/quote/models"
	"underwriter/internal/sign/models"
)

// shapes lists every bundle that can be signed in one session, as sorted
// kind sets. Anything not listed is refused.
var shapes = [][]quotemodels.DataKind{
	{quotemodels.KindSwedishApartment},
	{quotemodels.KindSwedishHouse},
	{quotemodels.KindNorwegianHomeContents, quotemodels.KindNorwegianTravel},
	{quotemodels.KindDanishAccident, quotemodels.KindDanishHomeContents},
	{quotemodels.KindDanishHomeContents, quotemodels.KindDanishTravel},
	{quotemodels.KindDanishAccident, quotemodels.KindDanishHomeContents, quotemodels.KindDanishTravel},
}

// Validate returns nil when quotes form one of the signable shapes, and the
// refusal otherwise. Quote order does not matter.
func Validate(quotes []*quotemodels.Quote) *models.FailedToStart {
	if len(quotes) == 0 {
		return refuse(models.CodeEmptyListOfQuotes)
	}

	kinds := make([]quotemodels.DataKind, 0, len(quotes))
	for _, q := range quotes {
		kinds = append(kinds, q.Data.Kind())
	}
	slices.Sort(kinds)

	for _, s := range shapes {
		if slices.Equal(s, kinds) {
			return nil
		}
	}
	if len(quotes) == 1 {
		return refuse(models.CodeSingleQuoteCannotBeAlone)
	}
	return refuse(models.CodeQuotesCanNotBeBundled)
}

// Describe renders the kinds of a bundle for logs.
func Describe(quotes []*quotemodels.Quote) string {
	kinds := make([]string, 0, len(quotes))
	for _, q := range quotes {
		kinds = append(kinds, string(q.Data.Kind()))
	}
	return strings.Join(kinds, ",")
}

func refuse(code models.FailureCode) *models.FailedToStart {
	f := models.Fail(code)
	return &f
}
