package guideline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"underwriter/internal/quote/models"
	dErrors "underwriter/pkg/domain-errors"
)

func ptr[T any](v T) *T { return &v }

var evaluatedAt = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

type stubDebtChecker struct {
	calls   int
	reasons []string
	err     error
}

func (s *stubDebtChecker) Check(context.Context, models.Person) ([]string, error) {
	s.calls++
	return s.reasons, s.err
}

func swedishPerson() models.Person {
	return models.Person{
		SSN:       "199001011239",
		FirstName: "Anna",
		LastName:  "Svensson",
		BirthDate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func apartmentData(household, living int, sub models.ApartmentSubType) models.SwedishApartmentData {
	return models.SwedishApartmentData{
		Person:        swedishPerson(),
		Address:       models.Address{Street: "Storgatan 1", ZipCode: "11122"},
		HouseholdSize: ptr(household),
		LivingSpace:   ptr(living),
		SubType:       ptr(sub),
	}
}

// young swaps in a 21 year old holder.
func young(d models.SwedishApartmentData) models.SwedishApartmentData {
	d.SSN = "200506159870"
	d.BirthDate = time.Date(2005, 6, 15, 0, 0, 0, 0, time.UTC)
	return d
}

func codes(breaches []models.GuidelineBreach) []string {
	out := make([]string, 0, len(breaches))
	for _, b := range breaches {
		out = append(out, b.Code)
	}
	return out
}

type EngineSuite struct {
	suite.Suite
	ctx    context.Context
	debt   *stubDebtChecker
	engine *Engine
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.ctx = context.Background()
	s.debt = &stubDebtChecker{}
	s.engine = NewEngine(s.debt, WithClock(func() time.Time { return evaluatedAt }))
}

func (s *EngineSuite) evaluate(d models.Data) []string {
	breaches, err := s.engine.Evaluate(s.ctx, d)
	s.Require().NoError(err)
	return codes(breaches)
}

func (s *EngineSuite) TestHouseholdSizeBoundaries() {
	s.Run("boundaries are inclusive", func() {
		s.Empty(s.evaluate(apartmentData(1, 40, models.ApartmentRent)))
		s.Empty(s.evaluate(apartmentData(6, 40, models.ApartmentRent)))
	})
	s.Run("below minimum", func() {
		s.Equal([]string{CodeTooSmallHouseholdSize}, s.evaluate(apartmentData(0, 40, models.ApartmentRent)))
	})
	s.Run("above maximum", func() {
		s.Equal([]string{CodeTooHighHouseholdSize}, s.evaluate(apartmentData(7, 40, models.ApartmentRent)))
	})
	s.Run("student maximum", func() {
		s.Empty(s.evaluate(young(apartmentData(2, 40, models.ApartmentStudentRent))))
		s.Equal([]string{CodeStudentTooBigHouseholdSize},
			s.evaluate(young(apartmentData(3, 40, models.ApartmentStudentBRF))))
	})
}

func (s *EngineSuite) TestReportsEveryProductBreach() {
	got := s.evaluate(apartmentData(7, 251, models.ApartmentBRF))
	s.Equal([]string{CodeTooHighHouseholdSize, CodeTooMuchLivingSpace}, got)
}

func (s *EngineSuite) TestStudentLimits() {
	got := s.evaluate(apartmentData(2, 51, models.ApartmentStudentRent))
	s.Equal([]string{CodeStudentTooMuchLivingSpace, CodeStudentOverage}, got, "born 1990 is over 30")
}

func (s *EngineSuite) TestPersonRulesShortCircuit() {
	s.Run("malformed ssn skips age and debt checks", func() {
		d := apartmentData(7, 40, models.ApartmentRent)
		d.SSN = "19900101"
		s.Equal([]string{CodeInvalidSSNLength}, s.evaluate(d))
		s.Zero(s.debt.calls)
	})

	s.Run("bad checksum", func() {
		d := apartmentData(2, 40, models.ApartmentRent)
		d.SSN = "199001011238"
		s.Equal([]string{CodeInvalidSSN}, s.evaluate(d))
		s.Zero(s.debt.calls)
	})

	s.Run("underage skips debt check and product rules", func() {
		d := apartmentData(9, 40, models.ApartmentRent)
		d.SSN = "201501011231"
		d.BirthDate = time.Time{}
		s.Equal([]string{CodeUnderage}, s.evaluate(d))
		s.Zero(s.debt.calls)
	})

	s.Run("failed debt check", func() {
		s.debt.reasons = []string{"payment remarks"}
		defer func() { s.debt.reasons = nil }()
		s.Equal([]string{CodeDebtCheck}, s.evaluate(apartmentData(9, 40, models.ApartmentRent)))
		s.Equal(1, s.debt.calls)
	})
}

func (s *EngineSuite) TestBirthDateMismatchIsNotSkipAfter() {
	d := apartmentData(7, 40, models.ApartmentRent)
	d.BirthDate = time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC)
	s.Equal([]string{CodeSSNDoesNotMatchBirthDate, CodeTooHighHouseholdSize}, s.evaluate(d))
}

func (s *EngineSuite) TestMissingFieldIsInputError() {
	d := apartmentData(2, 40, models.ApartmentRent)
	d.LivingSpace = nil

	breaches, err := s.engine.Evaluate(s.ctx, d)
	s.Require().Error(err)
	s.Nil(breaches)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *EngineSuite) TestDebtCheckerFailureIsNotABreach() {
	s.debt.err = errors.New("bureau down")
	_, err := s.engine.Evaluate(s.ctx, apartmentData(2, 40, models.ApartmentRent))
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func (s *EngineSuite) TestSwedishHouse() {
	base := func() models.SwedishHouseData {
		return models.SwedishHouseData{
			Person:             swedishPerson(),
			Address:            models.Address{Street: "Villavägen 2", ZipCode: "12345"},
			HouseholdSize:      ptr(4),
			LivingSpace:        ptr(140),
			AncillaryArea:      ptr(30),
			YearOfConstruction: ptr(1925),
			NumberOfBathrooms:  ptr(2),
		}
	}

	s.Run("within limits", func() {
		d := base()
		for range 4 {
			d.ExtraBuildings = append(d.ExtraBuildings, models.NewExtraBuilding(models.ExtraBuildingGarage, 7, false))
		}
		d.ExtraBuildings = append(d.ExtraBuildings, models.NewExtraBuilding(models.ExtraBuildingShed, 6, false))
		s.Empty(s.evaluate(d))
	})

	s.Run("every house rule breached", func() {
		d := base()
		d.YearOfConstruction = ptr(1924)
		d.NumberOfBathrooms = ptr(3)
		for range 4 {
			d.ExtraBuildings = append(d.ExtraBuildings, models.NewExtraBuilding(models.ExtraBuildingBarn, 10, false))
		}
		d.ExtraBuildings = append(d.ExtraBuildings,
			models.NewExtraBuilding(models.ExtraBuildingGuesthouse, 76, true),
			models.NewExtraBuilding(models.ExtraBuildingOther, 0, false),
		)
		s.Equal([]string{
			CodeTooEarlyYearOfConstruction,
			CodeTooManyBathrooms,
			CodeTooManyExtraBuildings,
			CodeTooBigExtraBuilding,
			CodeTooSmallExtraBuilding,
		}, s.evaluate(d))
	})
}

func (s *EngineSuite) TestNorwegianTravel() {
	travel := func(birth time.Time, coInsured int, youth bool) models.NorwegianTravelData {
		return models.NorwegianTravelData{
			Person:    models.Person{BirthDate: birth, FirstName: "Ola", LastName: "Nordmann"},
			CoInsured: ptr(coInsured),
			IsYouth:   youth,
		}
	}

	s.Run("ssn is optional", func() {
		s.Empty(s.evaluate(travel(time.Date(1995, 5, 1, 0, 0, 0, 0, time.UTC), 0, false)))
	})
	s.Run("youth age cap is inclusive", func() {
		s.Empty(s.evaluate(travel(time.Date(1992, 10, 15, 0, 0, 0, 0, time.UTC), 0, true)))
		s.Equal([]string{CodeYouthOverage}, s.evaluate(travel(time.Date(1991, 10, 14, 0, 0, 0, 0, time.UTC), 0, true)))
	})
	s.Run("negative co-insured", func() {
		s.Equal([]string{CodeNegativeCoInsured}, s.evaluate(travel(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), -1, false)))
	})
	s.Run("given ssn is validated", func() {
		d := travel(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), 0, false)
		d.SSN = "01019012481"
		s.Equal([]string{CodeInvalidSSN}, s.evaluate(d))
	})
}

func (s *EngineSuite) TestDanishHomeContents() {
	hc := func(living, coInsured int, student bool) models.DanishHomeContentsData {
		return models.DanishHomeContentsData{
			Person: models.Person{
				SSN:       "0101901234",
				BirthDate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
				FirstName: "Mette",
				LastName:  "Hansen",
			},
			DanishAddress: models.DanishAddress{Address: models.Address{Street: "Vej 1", ZipCode: "2100"}},
			LivingSpace:   ptr(living),
			CoInsured:     ptr(coInsured),
			IsStudent:     student,
			Type:          ptr(models.HomeContentsRent),
		}
	}

	s.Empty(s.evaluate(hc(250, 6, false)))
	s.Equal([]string{CodeTooHighCoInsured, CodeTooMuchLivingSpace}, s.evaluate(hc(251, 7, false)))
	s.Equal([]string{CodeStudentTooHighCoInsured, CodeStudentOverage, CodeStudentTooMuchLivingSpace},
		s.evaluate(hc(51, 2, true)))
}

func TestSkipAfterStopsLaterGuidelines(t *testing.T) {
	var invoked []string
	rule := func(name string, priority int, skipAfter, breached bool) Guideline {
		return Guideline{
			Name:      name,
			Priority:  priority,
			SkipAfter: skipAfter,
			Breach:    breach(name, name),
			Check: func(context.Context, Input) (bool, error) {
				invoked = append(invoked, name)
				return breached, nil
			},
		}
	}

	rules := RuleSet{
		rule("product", PriorityProduct, false, true),
		rule("age", PriorityAge, true, true),
		rule("format", PrioritySSNFormat, true, false),
		rule("debt", PriorityDebt, true, true),
	}

	breaches, err := Evaluate(context.Background(), rules, Input{Data: models.SwedishApartmentData{}, Now: evaluatedAt})
	require.NoError(t, err)
	assert.Equal(t, []string{"age"}, codes(breaches))
	assert.Equal(t, []string{"format", "age"}, invoked)
}

func TestRuleSetOrderedKeepsDeclarationOrderOnTies(t *testing.T) {
	rs := RuleSet{
		{Name: "b", Priority: PriorityProduct},
		{Name: "a", Priority: PrioritySSNFormat},
		{Name: "c", Priority: PriorityProduct},
	}
	var names []string
	for _, g := range rs.Ordered() {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
	assert.Equal(t, "b", rs[0].Name, "ordering must not mutate the set")
}

func TestBuiltInRuleSetsCheckThePersonFirst(t *testing.T) {
	e := NewEngine(&stubDebtChecker{})
	kinds := []models.DataKind{
		models.KindSwedishApartment,
		models.KindSwedishHouse,
		models.KindNorwegianHomeContents,
		models.KindNorwegianTravel,
		models.KindDanishHomeContents,
		models.KindDanishAccident,
		models.KindDanishTravel,
	}
	for _, kind := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			rs, ok := e.RuleSet(kind)
			require.True(t, ok)
			ordered := rs.Ordered()
			require.NotEmpty(t, ordered)
			assert.Equal(t, "ssn_length", ordered[0].Name)

			seenProduct := false
			for _, g := range ordered {
				if g.Priority >= PriorityProduct {
					seenProduct = true
					continue
				}
				assert.False(t, seenProduct, "%s runs after a product guideline", g.Name)
			}
		})
	}

	_, ok := e.RuleSet("UNKNOWN")
	assert.False(t, ok)
}

func TestWithRuleSetReplacesOneKind(t *testing.T) {
	custom := RuleSet{{Name: "only", Priority: PriorityProduct}}
	e := NewEngine(&stubDebtChecker{}, WithRuleSet(models.KindDanishAccident, custom))

	rs, ok := e.RuleSet(models.KindDanishAccident)
	require.True(t, ok)
	require.Len(t, rs, 1)
	assert.Equal(t, "only", rs[0].Name)

	other, ok := e.RuleSet(models.KindDanishTravel)
	require.True(t, ok)
	assert.Greater(t, len(other), 1)
}
