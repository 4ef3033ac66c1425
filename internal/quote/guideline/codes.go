package guideline

import "underwriter/internal/quote/models"

// Breach codes are part of the public contract: clients key remediation
// messages off them.
const (
	CodeInvalidSSNLength           = "INVALID_SSN_LENGTH"
	CodeInvalidSSN                 = "INVALID_SSN"
	CodeUnderage                   = "UNDERAGE"
	CodeDebtCheck                  = "DEBT_CHECK"
	CodeSSNDoesNotMatchBirthDate   = "SSN_DOES_NOT_MATCH_BIRTH_DATE"
	CodeTooSmallHouseholdSize      = "TOO_SMALL_NUMBER_OF_HOUSE_HOLD_SIZE"
	CodeTooHighHouseholdSize       = "TOO_HIGH_NUMBER_OF_HOUSE_HOLD_SIZE"
	CodeTooSmallLivingSpace        = "TOO_SMALL_LIVING_SPACE"
	CodeTooMuchLivingSpace         = "TOO_MUCH_LIVING_SPACE"
	CodeStudentTooBigHouseholdSize = "STUDENT_TOO_BIG_HOUSE_HOLD_SIZE"
	CodeStudentTooMuchLivingSpace  = "STUDENT_TOO_MUCH_LIVING_SPACE"
	CodeStudentTooHighCoInsured    = "STUDENT_TOO_HIGH_NUMBER_OF_CO_INSURED"
	CodeStudentOverage             = "STUDENT_OVERAGE"
	CodeYouthOverage               = "YOUTH_OVERAGE"
	CodeYouthTooMuchLivingSpace    = "YOUTH_TOO_MUCH_LIVING_SPACE"
	CodeYouthTooHighCoInsured      = "YOUTH_TOO_HIGH_NUMBER_OF_CO_INSURED"
	CodeNegativeCoInsured          = "NEGATIVE_NUMBER_OF_CO_INSURED"
	CodeTooHighCoInsured           = "TOO_HIGH_NUMBER_OF_CO_INSURED"
	CodeTooEarlyYearOfConstruction = "TOO_EARLY_YEAR_OF_CONSTRUCTION"
	CodeTooManyBathrooms           = "TOO_MANY_BATHROOMS"
	CodeTooManyExtraBuildings      = "TOO_MANY_EXTRA_BUILDINGS"
	CodeTooBigExtraBuilding        = "TOO_BIG_EXTRA_BUILDING_SIZE"
	CodeTooSmallExtraBuilding      = "TOO_SMALL_EXTRA_BUILDING_SIZE"
)

// Business limits.
const (
	MinAge                  = 18
	MinHouseholdSize        = 1
	MaxHouseholdSize        = 6
	MaxStudentHouseholdSize = 2
	MinLivingSpace          = 1
	MaxLivingSpace          = 250
	MaxStudentLivingSpace   = 50
	MaxStudentAge           = 30
	MaxYouthAge             = 30
	MaxYouthTravelAge       = 34

	MaxNorwegianCoInsured      = 5
	MaxNorwegianYouthCoInsured = 1
	MaxDanishCoInsured         = 6
	MaxDanishStudentCoInsured  = 1

	MinYearOfConstruction  = 1925
	MaxBathrooms           = 2
	MaxLargeExtraBuildings = 4
	LargeExtraBuildingArea = 6
	MaxExtraBuildingArea   = 75
	MinExtraBuildingArea   = 1
)

func breach(code, message string) models.GuidelineBreach {
	return models.GuidelineBreach{Code: code, Message: message}
}
