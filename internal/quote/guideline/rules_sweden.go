package guideline

import (
	"underwriter/internal/quote/models"
)

type apartment = models.SwedishApartmentData
type house = models.SwedishHouseData

func apartmentHousehold(d apartment) *int { return d.HouseholdSize }
func apartmentLiving(d apartment) *int    { return d.LivingSpace }
func houseHousehold(d house) *int         { return d.HouseholdSize }
func houseLiving(d house) *int            { return d.LivingSpace }

func swedishApartmentRules() RuleSet {
	return RuleSet{
		product("household_size_min",
			breach(CodeTooSmallHouseholdSize, "household size must be at least 1"),
			field("householdSize", apartmentHousehold, func(_ apartment, n int) bool { return n < MinHouseholdSize })),
		product("living_space_min",
			breach(CodeTooSmallLivingSpace, "living space must be at least 1 sqm"),
			field("livingSpace", apartmentLiving, func(_ apartment, n int) bool { return n < MinLivingSpace })),
		product("household_size_max",
			breach(CodeTooHighHouseholdSize, "household size must be at most 6"),
			field("householdSize", apartmentHousehold, func(_ apartment, n int) bool { return n > MaxHouseholdSize })),
		product("living_space_max",
			breach(CodeTooMuchLivingSpace, "living space must be at most 250 sqm"),
			field("livingSpace", apartmentLiving, func(_ apartment, n int) bool { return n > MaxLivingSpace })),
		product("student_household_size",
			breach(CodeStudentTooBigHouseholdSize, "student household size must be at most 2"),
			field("householdSize", apartmentHousehold, func(d apartment, n int) bool {
				return d.IsStudent() && n > MaxStudentHouseholdSize
			})),
		product("student_living_space",
			breach(CodeStudentTooMuchLivingSpace, "student living space must be at most 50 sqm"),
			field("livingSpace", apartmentLiving, func(d apartment, n int) bool {
				return d.IsStudent() && n > MaxStudentLivingSpace
			})),
		product("student_age",
			breach(CodeStudentOverage, "student insurance requires an age of at most 30"),
			on(func(in Input, d apartment) (bool, error) {
				if !d.IsStudent() {
					return false, nil
				}
				return ageAbove(in, MaxStudentAge)
			})),
	}
}

func swedishHouseRules() RuleSet {
	return RuleSet{
		product("household_size_min",
			breach(CodeTooSmallHouseholdSize, "household size must be at least 1"),
			field("householdSize", houseHousehold, func(_ house, n int) bool { return n < MinHouseholdSize })),
		product("living_space_min",
			breach(CodeTooSmallLivingSpace, "living space must be at least 1 sqm"),
			field("livingSpace", houseLiving, func(_ house, n int) bool { return n < MinLivingSpace })),
		product("household_size_max",
			breach(CodeTooHighHouseholdSize, "household size must be at most 6"),
			field("householdSize", houseHousehold, func(_ house, n int) bool { return n > MaxHouseholdSize })),
		product("living_space_max",
			breach(CodeTooMuchLivingSpace, "living space must be at most 250 sqm"),
			field("livingSpace", houseLiving, func(_ house, n int) bool { return n > MaxLivingSpace })),
		product("year_of_construction",
			breach(CodeTooEarlyYearOfConstruction, "house must be built 1925 or later"),
			field("yearOfConstruction", func(d house) *int { return d.YearOfConstruction },
				func(_ house, y int) bool { return y < MinYearOfConstruction })),
		product("bathrooms",
			breach(CodeTooManyBathrooms, "house must have at most 2 bathrooms"),
			field("numberOfBathrooms", func(d house) *int { return d.NumberOfBathrooms },
				func(_ house, n int) bool { return n > MaxBathrooms })),
		product("large_extra_buildings",
			breach(CodeTooManyExtraBuildings, "at most 4 extra buildings larger than 6 sqm are allowed"),
			on(func(_ Input, d house) (bool, error) {
				large := 0
				for _, b := range d.ExtraBuildings {
					if b.Area > LargeExtraBuildingArea {
						large++
					}
				}
				return large > MaxLargeExtraBuildings, nil
			})),
		product("extra_building_max_area",
			breach(CodeTooBigExtraBuilding, "extra buildings must be at most 75 sqm"),
			on(func(_ Input, d house) (bool, error) {
				for _, b := range d.ExtraBuildings {
					if b.Area > MaxExtraBuildingArea {
						return true, nil
					}
				}
				return false, nil
			})),
		product("extra_building_min_area",
			breach(CodeTooSmallExtraBuilding, "extra buildings must be at least 1 sqm"),
			on(func(_ Input, d house) (bool, error) {
				for _, b := range d.ExtraBuildings {
					if b.Area < MinExtraBuildingArea {
						return true, nil
					}
				}
				return false, nil
			})),
	}
}

// ageAbove reports whether the holder is older than limit.
func ageAbove(in Input, limit int) (bool, error) {
	age, err := in.Data.Holder().Age(in.Data.Kind().Market(), in.Now)
	if err != nil {
		return false, ageError(err)
	}
	return age > limit, nil
}
