package guideline

import "underwriter/internal/quote/models"

type dkHomeContents = models.DanishHomeContentsData

// danishCoInsuredRules are shared by every Danish product.
func danishCoInsuredRules[T models.Data](coInsured func(T) *int, student func(T) bool) RuleSet {
	return RuleSet{
		product("co_insured_negative",
			breach(CodeNegativeCoInsured, "number of co-insured cannot be negative"),
			field("coInsured", coInsured, func(_ T, n int) bool { return n < 0 })),
		product("co_insured_max",
			breach(CodeTooHighCoInsured, "number of co-insured must be at most 6"),
			field("coInsured", coInsured, func(d T, n int) bool {
				return !student(d) && n > MaxDanishCoInsured
			})),
		product("student_co_insured",
			breach(CodeStudentTooHighCoInsured, "student insurance allows at most 1 co-insured"),
			field("coInsured", coInsured, func(d T, n int) bool {
				return student(d) && n > MaxDanishStudentCoInsured
			})),
		product("student_age",
			breach(CodeStudentOverage, "student insurance requires an age of at most 30"),
			on(func(in Input, d T) (bool, error) {
				if !student(d) {
					return false, nil
				}
				return ageAbove(in, MaxStudentAge)
			})),
	}
}

func danishHomeContentsRules() RuleSet {
	living := func(d dkHomeContents) *int { return d.LivingSpace }

	rules := danishCoInsuredRules(
		func(d dkHomeContents) *int { return d.CoInsured },
		func(d dkHomeContents) bool { return d.IsStudent },
	)
	return append(rules,
		product("living_space_min",
			breach(CodeTooSmallLivingSpace, "living space must be at least 1 sqm"),
			field("livingSpace", living, func(_ dkHomeContents, n int) bool { return n < MinLivingSpace })),
		product("living_space_max",
			breach(CodeTooMuchLivingSpace, "living space must be at most 250 sqm"),
			field("livingSpace", living, func(d dkHomeContents, n int) bool {
				return !d.IsStudent && n > MaxLivingSpace
			})),
		product("student_living_space",
			breach(CodeStudentTooMuchLivingSpace, "student living space must be at most 50 sqm"),
			field("livingSpace", living, func(d dkHomeContents, n int) bool {
				return d.IsStudent && n > MaxStudentLivingSpace
			})),
	)
}

func danishAccidentRules() RuleSet {
	return danishCoInsuredRules(
		func(d models.DanishAccidentData) *int { return d.CoInsured },
		func(d models.DanishAccidentData) bool { return d.IsStudent },
	)
}

func danishTravelRules() RuleSet {
	return danishCoInsuredRules(
		func(d models.DanishTravelData) *int { return d.CoInsured },
		func(d models.DanishTravelData) bool { return d.IsStudent },
	)
}
