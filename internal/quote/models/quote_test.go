package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "underwriter/pkg/domain-errors"
)

func ptr[T any](v T) *T { return &v }

var created = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newApartmentQuote(t *testing.T) *Quote {
	t.Helper()
	q, err := NewQuote(NewQuoteParams{
		Kind: KindSwedishApartment,
		Patch: Patch{
			SSN:           ptr("199001011239"),
			FirstName:     ptr("Anna"),
			LastName:      ptr("Svensson"),
			Street:        ptr("Storgatan 1"),
			ZipCode:       ptr("11122"),
			City:          ptr("Stockholm"),
			HouseholdSize: ptr(2),
			LivingSpace:   ptr(45),
			SubType:       ptr(ApartmentStudentRent),
		},
		Now: created,
	})
	require.NoError(t, err)
	return q
}

func TestNewQuote(t *testing.T) {
	q := newApartmentQuote(t)

	assert.Equal(t, StateIncomplete, q.State)
	assert.Equal(t, MarketSweden, q.Market())
	assert.Equal(t, ProductApartment, q.ProductType())
	assert.Equal(t, "SEK", q.Currency)
	assert.Equal(t, created.Add(DefaultValidity), q.ValidTo())
	assert.Empty(t, q.Data.MissingFields())

	_, err := NewQuote(NewQuoteParams{Kind: "SWEDISH_BOAT", Now: created})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestQuoteUpdate(t *testing.T) {
	t.Run("leaves receiver untouched", func(t *testing.T) {
		q := newApartmentQuote(t)
		updated, err := q.Update(Patch{LivingSpace: ptr(50)}, created.Add(time.Minute))
		require.NoError(t, err)

		assert.Equal(t, 45, *q.Data.(SwedishApartmentData).LivingSpace)
		assert.Equal(t, 50, *updated.Data.(SwedishApartmentData).LivingSpace)
		assert.Equal(t, q.ID, updated.ID)
		assert.Equal(t, q.CreatedAt, updated.CreatedAt)
	})

	t.Run("apartment to house and back keeps apartment-only fields", func(t *testing.T) {
		q := newApartmentQuote(t)

		house, err := q.Update(Patch{
			Kind:               KindSwedishHouse,
			YearOfConstruction: ptr(1980),
			NumberOfBathrooms:  ptr(1),
			AncillaryArea:      ptr(20),
			LivingSpace:        ptr(60),
		}, created.Add(time.Minute))
		require.NoError(t, err)
		h := house.Data.(SwedishHouseData)
		assert.Equal(t, "199001011239", h.SSN)
		assert.Equal(t, "Storgatan 1", h.Street)
		assert.Equal(t, 2, *h.HouseholdSize)
		assert.Equal(t, 60, *h.LivingSpace)

		back, err := house.Update(Patch{Kind: KindSwedishApartment}, created.Add(2*time.Minute))
		require.NoError(t, err)
		a := back.Data.(SwedishApartmentData)
		require.NotNil(t, a.SubType)
		assert.Equal(t, ApartmentStudentRent, *a.SubType)
		assert.Equal(t, q.Data.(SwedishApartmentData).ID, a.ID)
		assert.Equal(t, 60, *a.LivingSpace, "explicitly overwritten during the detour")
		assert.Equal(t, 2, *a.HouseholdSize)
		assert.Contains(t, back.Parked, KindSwedishHouse)
		assert.NotContains(t, back.Parked, KindSwedishApartment)
	})

	t.Run("cross market swap changes currency", func(t *testing.T) {
		q := newApartmentQuote(t)
		travel, err := q.Update(Patch{Kind: KindNorwegianTravel, CoInsured: ptr(0)}, created)
		require.NoError(t, err)
		assert.Equal(t, "NOK", travel.Currency)
		assert.Equal(t, "Anna", travel.Data.Holder().FirstName)
	})

	t.Run("rejected once quoted", func(t *testing.T) {
		q := newApartmentQuote(t)
		quoted, err := q.Complete(decimal.NewFromInt(129), "SEK", created)
		require.NoError(t, err)

		_, err = quoted.Update(Patch{LivingSpace: ptr(30)}, created)
		assert.ErrorIs(t, err, ErrNotEditable)
	})
}

func TestQuoteSign(t *testing.T) {
	q := newApartmentQuote(t)
	quoted, err := q.Complete(decimal.RequireFromString("129.50"), "SEK", created)
	require.NoError(t, err)

	t.Run("incomplete quotes cannot be signed", func(t *testing.T) {
		_, err := q.Sign(SignProof{}, created)
		assert.ErrorIs(t, err, ErrNotSignable)
	})

	t.Run("expired quote fails with expiry error", func(t *testing.T) {
		late := quoted.ValidTo().Add(time.Second)
		assert.Equal(t, StateExpired, quoted.EffectiveState(late))

		_, err := quoted.Sign(SignProof{}, late)
		assert.ErrorIs(t, err, ErrQuoteExpired)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeExpired))
	})

	t.Run("signs within validity", func(t *testing.T) {
		at := created.Add(24 * time.Hour)
		signed, err := quoted.Sign(SignProof{ReferenceToken: "ref"}, at)
		require.NoError(t, err)
		assert.Equal(t, StateSigned, signed.State)
		assert.Equal(t, at, *signed.SignedAt)
		assert.Equal(t, "ref", signed.SignProof.ReferenceToken)
		assert.Equal(t, StateSigned, signed.EffectiveState(signed.ValidTo().Add(time.Hour)))

		_, err = signed.Sign(SignProof{}, at)
		assert.ErrorIs(t, err, ErrAlreadySigned)
	})
}

func TestDataCodec(t *testing.T) {
	q := newApartmentQuote(t)
	house, err := q.Update(Patch{
		Kind:           KindSwedishHouse,
		ExtraBuildings: []ExtraBuilding{{Type: ExtraBuildingSauna, Area: 8, HasWaterConnected: true}},
	}, created)
	require.NoError(t, err)

	raw, err := MarshalData(house.Data)
	require.NoError(t, err)
	decoded, err := UnmarshalData(raw)
	require.NoError(t, err)
	h := decoded.(SwedishHouseData)
	require.Len(t, h.ExtraBuildings, 1)
	assert.Equal(t, "Bastu", h.ExtraBuildings[0].DisplayName)
	assert.Equal(t, "Anna", h.FirstName)

	parkedRaw, err := MarshalParked(house.Parked)
	require.NoError(t, err)
	parked, err := UnmarshalParked(parkedRaw)
	require.NoError(t, err)
	assert.Equal(t, house.Parked[KindSwedishApartment], parked[KindSwedishApartment])
}

func TestApplyPatchLeavesInputUntouched(t *testing.T) {
	orig := NorwegianTravelData{Person: Person{FirstName: "Kari"}, CoInsured: ptr(1)}

	got := ApplyPatch(orig, Patch{FirstName: ptr("Ola"), CoInsured: ptr(2)}).(NorwegianTravelData)

	assert.Equal(t, "Ola", got.FirstName)
	assert.Equal(t, 2, *got.CoInsured)
	assert.Equal(t, "Kari", orig.FirstName)
	assert.Equal(t, 1, *orig.CoInsured)
}
