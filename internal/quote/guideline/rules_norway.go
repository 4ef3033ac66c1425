package guideline

import "underwriter/internal/quote/models"

type noHomeContents = models.NorwegianHomeContentsData
type noTravel = models.NorwegianTravelData

func norwegianHomeContentsRules() RuleSet {
	coInsured := func(d noHomeContents) *int { return d.CoInsured }
	living := func(d noHomeContents) *int { return d.LivingSpace }

	return RuleSet{
		product("co_insured_negative",
			breach(CodeNegativeCoInsured, "number of co-insured cannot be negative"),
			field("coInsured", coInsured, func(_ noHomeContents, n int) bool { return n < 0 })),
		product("living_space_min",
			breach(CodeTooSmallLivingSpace, "living space must be at least 1 sqm"),
			field("livingSpace", living, func(_ noHomeContents, n int) bool { return n < MinLivingSpace })),
		product("co_insured_max",
			breach(CodeTooHighCoInsured, "number of co-insured must be at most 5"),
			field("coInsured", coInsured, func(_ noHomeContents, n int) bool { return n > MaxNorwegianCoInsured })),
		product("living_space_max",
			breach(CodeTooMuchLivingSpace, "living space must be at most 250 sqm"),
			field("livingSpace", living, func(_ noHomeContents, n int) bool { return n > MaxLivingSpace })),
		product("youth_co_insured",
			breach(CodeYouthTooHighCoInsured, "youth insurance allows at most 1 co-insured"),
			field("coInsured", coInsured, func(d noHomeContents, n int) bool {
				return d.IsYouth && n > MaxNorwegianYouthCoInsured
			})),
		product("youth_living_space",
			breach(CodeYouthTooMuchLivingSpace, "youth living space must be at most 50 sqm"),
			field("livingSpace", living, func(d noHomeContents, n int) bool {
				return d.IsYouth && n > MaxStudentLivingSpace
			})),
		product("youth_age",
			breach(CodeYouthOverage, "youth insurance requires an age of at most 30"),
			on(func(in Input, d noHomeContents) (bool, error) {
				if !d.IsYouth {
					return false, nil
				}
				return ageAbove(in, MaxYouthAge)
			})),
	}
}

func norwegianTravelRules() RuleSet {
	coInsured := func(d noTravel) *int { return d.CoInsured }

	return RuleSet{
		product("co_insured_negative",
			breach(CodeNegativeCoInsured, "number of co-insured cannot be negative"),
			field("coInsured", coInsured, func(_ noTravel, n int) bool { return n < 0 })),
		product("co_insured_max",
			breach(CodeTooHighCoInsured, "number of co-insured must be at most 5"),
			field("coInsured", coInsured, func(_ noTravel, n int) bool { return n > MaxNorwegianCoInsured })),
		product("youth_co_insured",
			breach(CodeYouthTooHighCoInsured, "youth insurance allows at most 1 co-insured"),
			field("coInsured", coInsured, func(d noTravel, n int) bool {
				return d.IsYouth && n > MaxNorwegianYouthCoInsured
			})),
		product("youth_age",
			breach(CodeYouthOverage, "youth travel insurance requires an age of at most 34"),
			on(func(in Input, d noTravel) (bool, error) {
				if !d.IsYouth {
					return false, nil
				}
				return ageAbove(in, MaxYouthTravelAge)
			})),
	}
}
