package models

import (
	"log/slog"

	"github.com/google/uuid"
)

// Data is a quote payload. The implementer set is closed: exactly the seven
// variant structs in this file. Switches over Data should handle every
// variant and panic in the default branch.
type Data interface {
	PolicyHolder
	Kind() DataKind
	// MissingFields lists fields that must be present before pricing.
	MissingFields() []string
	apply(p Patch) Data
	dataID() uuid.UUID
}

// Address is a postal address.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
}

// ApartmentSubType is the tenure of a Swedish apartment.
type ApartmentSubType string

const (
	ApartmentBRF         ApartmentSubType = "BRF"
	ApartmentRent        ApartmentSubType = "RENT"
	ApartmentStudentBRF  ApartmentSubType = "STUDENT_BRF"
	ApartmentStudentRent ApartmentSubType = "STUDENT_RENT"
)

func (s ApartmentSubType) IsStudent() bool {
	return s == ApartmentStudentBRF || s == ApartmentStudentRent
}

// HomeContentsType is the tenure of a Norwegian or Danish home.
type HomeContentsType string

const (
	HomeContentsOwn  HomeContentsType = "OWN"
	HomeContentsRent HomeContentsType = "RENT"
)

type SwedishApartmentData struct {
	ID uuid.UUID `json:"id"`
	Person
	Address
	HouseholdSize *int              `json:"householdSize,omitempty"`
	LivingSpace   *int              `json:"livingSpace,omitempty"`
	SubType       *ApartmentSubType `json:"subType,omitempty"`
}

type SwedishHouseData struct {
	ID uuid.UUID `json:"id"`
	Person
	Address
	HouseholdSize      *int            `json:"householdSize,omitempty"`
	LivingSpace        *int            `json:"livingSpace,omitempty"`
	AncillaryArea      *int            `json:"ancillaryArea,omitempty"`
	YearOfConstruction *int            `json:"yearOfConstruction,omitempty"`
	NumberOfBathrooms  *int            `json:"numberOfBathrooms,omitempty"`
	ExtraBuildings     []ExtraBuilding `json:"extraBuildings,omitempty"`
	IsSubleted         bool            `json:"isSubleted"`
}

type NorwegianHomeContentsData struct {
	ID uuid.UUID `json:"id"`
	Person
	Address
	LivingSpace *int              `json:"livingSpace,omitempty"`
	CoInsured   *int              `json:"coInsured,omitempty"`
	IsYouth     bool              `json:"isYouth"`
	Type        *HomeContentsType `json:"type,omitempty"`
}

type NorwegianTravelData struct {
	ID uuid.UUID `json:"id"`
	Person
	CoInsured *int `json:"coInsured,omitempty"`
	IsYouth   bool `json:"isYouth"`
}

// DanishAddress extends Address with the Danish building register fields.
type DanishAddress struct {
	Address
	BbrID     string `json:"bbrId,omitempty"`
	Apartment string `json:"apartment,omitempty"`
	Floor     string `json:"floor,omitempty"`
}

type DanishHomeContentsData struct {
	ID uuid.UUID `json:"id"`
	Person
	DanishAddress
	LivingSpace *int              `json:"livingSpace,omitempty"`
	CoInsured   *int              `json:"coInsured,omitempty"`
	IsStudent   bool              `json:"isStudent"`
	Type        *HomeContentsType `json:"type,omitempty"`
}

type DanishAccidentData struct {
	ID uuid.UUID `json:"id"`
	Person
	DanishAddress
	CoInsured *int `json:"coInsured,omitempty"`
	IsStudent bool `json:"isStudent"`
}

type DanishTravelData struct {
	ID uuid.UUID `json:"id"`
	Person
	DanishAddress
	CoInsured *int `json:"coInsured,omitempty"`
	IsStudent bool `json:"isStudent"`
}

func (SwedishApartmentData) Kind() DataKind      { return KindSwedishApartment }
func (SwedishHouseData) Kind() DataKind          { return KindSwedishHouse }
func (NorwegianHomeContentsData) Kind() DataKind { return KindNorwegianHomeContents }
func (NorwegianTravelData) Kind() DataKind       { return KindNorwegianTravel }
func (DanishHomeContentsData) Kind() DataKind    { return KindDanishHomeContents }
func (DanishAccidentData) Kind() DataKind        { return KindDanishAccident }
func (DanishTravelData) Kind() DataKind          { return KindDanishTravel }

func (d SwedishApartmentData) Holder() Person      { return d.Person }
func (d SwedishHouseData) Holder() Person          { return d.Person }
func (d NorwegianHomeContentsData) Holder() Person { return d.Person }
func (d NorwegianTravelData) Holder() Person       { return d.Person }
func (d DanishHomeContentsData) Holder() Person    { return d.Person }
func (d DanishAccidentData) Holder() Person        { return d.Person }
func (d DanishTravelData) Holder() Person          { return d.Person }

func (d SwedishApartmentData) dataID() uuid.UUID      { return d.ID }
func (d SwedishHouseData) dataID() uuid.UUID          { return d.ID }
func (d NorwegianHomeContentsData) dataID() uuid.UUID { return d.ID }
func (d NorwegianTravelData) dataID() uuid.UUID       { return d.ID }
func (d DanishHomeContentsData) dataID() uuid.UUID    { return d.ID }
func (d DanishAccidentData) dataID() uuid.UUID        { return d.ID }
func (d DanishTravelData) dataID() uuid.UUID          { return d.ID }

// IsStudent reports whether the apartment is insured on student terms.
func (d SwedishApartmentData) IsStudent() bool {
	return d.SubType != nil && d.SubType.IsStudent()
}

// EmptyData returns a payload of kind with only its id set.
func EmptyData(kind DataKind) (Data, bool) {
	id := uuid.New()
	switch kind {
	case KindSwedishApartment:
		return SwedishApartmentData{ID: id}, true
	case KindSwedishHouse:
		return SwedishHouseData{ID: id}, true
	case KindNorwegianHomeContents:
		return NorwegianHomeContentsData{ID: id}, true
	case KindNorwegianTravel:
		return NorwegianTravelData{ID: id}, true
	case KindDanishHomeContents:
		return DanishHomeContentsData{ID: id}, true
	case KindDanishAccident:
		return DanishAccidentData{ID: id}, true
	case KindDanishTravel:
		return DanishTravelData{ID: id}, true
	}
	return nil, false
}

type fieldCheck struct {
	missing []string
}

func (f *fieldCheck) str(name, v string) {
	if v == "" {
		f.missing = append(f.missing, name)
	}
}

func (f *fieldCheck) ptr(name string, present bool) {
	if !present {
		f.missing = append(f.missing, name)
	}
}

func (f *fieldCheck) identified(p Person) {
	f.str("ssn", p.SSN)
	f.str("firstName", p.FirstName)
	f.str("lastName", p.LastName)
}

func (f *fieldCheck) address(a Address) {
	f.str("street", a.Street)
	f.str("zipCode", a.ZipCode)
}

func (d SwedishApartmentData) MissingFields() []string {
	var f fieldCheck
	f.identified(d.Person)
	f.address(d.Address)
	f.ptr("householdSize", d.HouseholdSize != nil)
	f.ptr("livingSpace", d.LivingSpace != nil)
	f.ptr("subType", d.SubType != nil)
	return f.missing
}

func (d SwedishHouseData) MissingFields() []string {
	var f fieldCheck
	f.identified(d.Person)
	f.address(d.Address)
	f.ptr("householdSize", d.HouseholdSize != nil)
	f.ptr("livingSpace", d.LivingSpace != nil)
	f.ptr("ancillaryArea", d.AncillaryArea != nil)
	f.ptr("yearOfConstruction", d.YearOfConstruction != nil)
	f.ptr("numberOfBathrooms", d.NumberOfBathrooms != nil)
	return f.missing
}

func (d NorwegianHomeContentsData) MissingFields() []string {
	var f fieldCheck
	f.ptr("birthDate", !d.BirthDate.IsZero())
	f.str("firstName", d.FirstName)
	f.str("lastName", d.LastName)
	f.address(d.Address)
	f.ptr("livingSpace", d.LivingSpace != nil)
	f.ptr("coInsured", d.CoInsured != nil)
	f.ptr("type", d.Type != nil)
	return f.missing
}

func (d NorwegianTravelData) MissingFields() []string {
	var f fieldCheck
	f.ptr("birthDate", !d.BirthDate.IsZero())
	f.str("firstName", d.FirstName)
	f.str("lastName", d.LastName)
	f.ptr("coInsured", d.CoInsured != nil)
	return f.missing
}

func (d DanishHomeContentsData) MissingFields() []string {
	var f fieldCheck
	f.identified(d.Person)
	f.ptr("birthDate", !d.BirthDate.IsZero())
	f.address(d.Address)
	f.ptr("livingSpace", d.LivingSpace != nil)
	f.ptr("coInsured", d.CoInsured != nil)
	f.ptr("type", d.Type != nil)
	return f.missing
}

func (d DanishAccidentData) MissingFields() []string {
	var f fieldCheck
	f.identified(d.Person)
	f.ptr("birthDate", !d.BirthDate.IsZero())
	f.address(d.Address)
	f.ptr("coInsured", d.CoInsured != nil)
	return f.missing
}

func (d DanishTravelData) MissingFields() []string {
	var f fieldCheck
	f.identified(d.Person)
	f.ptr("birthDate", !d.BirthDate.IsZero())
	f.address(d.Address)
	f.ptr("coInsured", d.CoInsured != nil)
	return f.missing
}

func intAttr(key string, v *int) slog.Attr {
	if v == nil {
		return slog.String(key, "")
	}
	return slog.Int(key, *v)
}

func zipPrefix(zip string) string {
	if len(zip) > 3 {
		return zip[:3]
	}
	return zip
}

func (d SwedishApartmentData) LogValue() slog.Value {
	subType := ""
	if d.SubType != nil {
		subType = string(*d.SubType)
	}
	return slog.GroupValue(
		slog.String("kind", string(d.Kind())),
		slog.Any("holder", d.Person),
		slog.String("zip_prefix", zipPrefix(d.ZipCode)),
		intAttr("household_size", d.HouseholdSize),
		intAttr("living_space", d.LivingSpace),
		slog.String("sub_type", subType),
	)
}

func (d SwedishHouseData) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", string(d.Kind())),
		slog.Any("holder", d.Person),
		slog.String("zip_prefix", zipPrefix(d.ZipCode)),
		intAttr("household_size", d.HouseholdSize),
		intAttr("living_space", d.LivingSpace),
		intAttr("year_of_construction", d.YearOfConstruction),
		intAttr("bathrooms", d.NumberOfBathrooms),
		slog.Int("extra_buildings", len(d.ExtraBuildings)),
	)
}

func (d NorwegianHomeContentsData) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", string(d.Kind())),
		slog.Any("holder", d.Person),
		slog.String("zip_prefix", zipPrefix(d.ZipCode)),
		intAttr("living_space", d.LivingSpace),
		intAttr("co_insured", d.CoInsured),
		slog.Bool("youth", d.IsYouth),
	)
}

func (d NorwegianTravelData) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", string(d.Kind())),
		slog.Any("holder", d.Person),
		intAttr("co_insured", d.CoInsured),
		slog.Bool("youth", d.IsYouth),
	)
}

func (d DanishHomeContentsData) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", string(d.Kind())),
		slog.Any("holder", d.Person),
		slog.String("zip_prefix", zipPrefix(d.ZipCode)),
		intAttr("living_space", d.LivingSpace),
		intAttr("co_insured", d.CoInsured),
		slog.Bool("student", d.IsStudent),
	)
}

func (d DanishAccidentData) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", string(d.Kind())),
		slog.Any("holder", d.Person),
		intAttr("co_insured", d.CoInsured),
		slog.Bool("student", d.IsStudent),
	)
}

func (d DanishTravelData) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", string(d.Kind())),
		slog.Any("holder", d.Person),
		intAttr("co_insured", d.CoInsured),
		slog.Bool("student", d.IsStudent),
	)
}
