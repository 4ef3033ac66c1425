package models

import "time"

// Patch is a partial payload. Nil fields leave the target unchanged; fields
// the target variant does not carry are ignored. A non-empty Kind asks for
// the payload to be swapped to that variant.
type Patch struct {
	Kind DataKind `json:"kind,omitempty"`

	SSN         *string    `json:"ssn,omitempty"`
	BirthDate   *time.Time `json:"birthDate,omitempty"`
	FirstName   *string    `json:"firstName,omitempty"`
	LastName    *string    `json:"lastName,omitempty"`
	Email       *string    `json:"email,omitempty"`
	PhoneNumber *string    `json:"phoneNumber,omitempty"`

	Street    *string `json:"street,omitempty"`
	City      *string `json:"city,omitempty"`
	ZipCode   *string `json:"zipCode,omitempty"`
	BbrID     *string `json:"bbrId,omitempty"`
	Apartment *string `json:"apartment,omitempty"`
	Floor     *string `json:"floor,omitempty"`

	HouseholdSize      *int `json:"householdSize,omitempty"`
	LivingSpace        *int `json:"livingSpace,omitempty"`
	CoInsured          *int `json:"coInsured,omitempty"`
	AncillaryArea      *int `json:"ancillaryArea,omitempty"`
	YearOfConstruction *int `json:"yearOfConstruction,omitempty"`
	NumberOfBathrooms  *int `json:"numberOfBathrooms,omitempty"`

	SubType          *ApartmentSubType `json:"subType,omitempty"`
	HomeContentsType *HomeContentsType `json:"homeContentsType,omitempty"`
	ExtraBuildings   []ExtraBuilding   `json:"extraBuildings,omitempty"`
	IsSubleted       *bool             `json:"isSubleted,omitempty"`
	IsYouth          *bool             `json:"isYouth,omitempty"`
	IsStudent        *bool             `json:"isStudent,omitempty"`
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst **int, v *int) {
	if v != nil {
		n := *v
		*dst = &n
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func (p Person) apply(pt Patch) Person {
	setString(&p.SSN, pt.SSN)
	if pt.BirthDate != nil {
		p.BirthDate = *pt.BirthDate
	}
	setString(&p.FirstName, pt.FirstName)
	setString(&p.LastName, pt.LastName)
	setString(&p.Email, pt.Email)
	setString(&p.PhoneNumber, pt.PhoneNumber)
	return p
}

func (a Address) apply(pt Patch) Address {
	setString(&a.Street, pt.Street)
	setString(&a.City, pt.City)
	setString(&a.ZipCode, pt.ZipCode)
	return a
}

func (a DanishAddress) apply(pt Patch) DanishAddress {
	a.Address = a.Address.apply(pt)
	setString(&a.BbrID, pt.BbrID)
	setString(&a.Apartment, pt.Apartment)
	setString(&a.Floor, pt.Floor)
	return a
}

func (d SwedishApartmentData) apply(pt Patch) Data {
	d.Person = d.Person.apply(pt)
	d.Address = d.Address.apply(pt)
	setInt(&d.HouseholdSize, pt.HouseholdSize)
	setInt(&d.LivingSpace, pt.LivingSpace)
	if pt.SubType != nil {
		s := *pt.SubType
		d.SubType = &s
	}
	return d
}

func (d SwedishHouseData) apply(pt Patch) Data {
	d.Person = d.Person.apply(pt)
	d.Address = d.Address.apply(pt)
	setInt(&d.HouseholdSize, pt.HouseholdSize)
	setInt(&d.LivingSpace, pt.LivingSpace)
	setInt(&d.AncillaryArea, pt.AncillaryArea)
	setInt(&d.YearOfConstruction, pt.YearOfConstruction)
	setInt(&d.NumberOfBathrooms, pt.NumberOfBathrooms)
	if pt.ExtraBuildings != nil {
		d.ExtraBuildings = cloneExtraBuildings(pt.ExtraBuildings)
	} else {
		d.ExtraBuildings = cloneExtraBuildings(d.ExtraBuildings)
	}
	setBool(&d.IsSubleted, pt.IsSubleted)
	return d
}

func (d NorwegianHomeContentsData) apply(pt Patch) Data {
	d.Person = d.Person.apply(pt)
	d.Address = d.Address.apply(pt)
	setInt(&d.LivingSpace, pt.LivingSpace)
	setInt(&d.CoInsured, pt.CoInsured)
	setBool(&d.IsYouth, pt.IsYouth)
	if pt.HomeContentsType != nil {
		t := *pt.HomeContentsType
		d.Type = &t
	}
	return d
}

func (d NorwegianTravelData) apply(pt Patch) Data {
	d.Person = d.Person.apply(pt)
	setInt(&d.CoInsured, pt.CoInsured)
	setBool(&d.IsYouth, pt.IsYouth)
	return d
}

func (d DanishHomeContentsData) apply(pt Patch) Data {
	d.Person = d.Person.apply(pt)
	d.DanishAddress = d.DanishAddress.apply(pt)
	setInt(&d.LivingSpace, pt.LivingSpace)
	setInt(&d.CoInsured, pt.CoInsured)
	setBool(&d.IsStudent, pt.IsStudent)
	if pt.HomeContentsType != nil {
		t := *pt.HomeContentsType
		d.Type = &t
	}
	return d
}

func (d DanishAccidentData) apply(pt Patch) Data {
	d.Person = d.Person.apply(pt)
	d.DanishAddress = d.DanishAddress.apply(pt)
	setInt(&d.CoInsured, pt.CoInsured)
	setBool(&d.IsStudent, pt.IsStudent)
	return d
}

func (d DanishTravelData) apply(pt Patch) Data {
	d.Person = d.Person.apply(pt)
	d.DanishAddress = d.DanishAddress.apply(pt)
	setInt(&d.CoInsured, pt.CoInsured)
	setBool(&d.IsStudent, pt.IsStudent)
	return d
}

// ApplyPatch returns d with the patch applied. d is not modified.
func ApplyPatch(d Data, pt Patch) Data {
	return d.apply(pt)
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// sharedPatch captures the fields that survive a variant swap: the policy
// holder, the address and the size of the home.
func sharedPatch(d Data) Patch {
	h := d.Holder()
	pt := Patch{
		SSN:         nonEmpty(h.SSN),
		FirstName:   nonEmpty(h.FirstName),
		LastName:    nonEmpty(h.LastName),
		Email:       nonEmpty(h.Email),
		PhoneNumber: nonEmpty(h.PhoneNumber),
	}
	if !h.BirthDate.IsZero() {
		b := h.BirthDate
		pt.BirthDate = &b
	}

	var addr Address
	switch v := d.(type) {
	case SwedishApartmentData:
		addr = v.Address
		pt.HouseholdSize = v.HouseholdSize
		pt.LivingSpace = v.LivingSpace
	case SwedishHouseData:
		addr = v.Address
		pt.HouseholdSize = v.HouseholdSize
		pt.LivingSpace = v.LivingSpace
	case NorwegianHomeContentsData:
		addr = v.Address
		pt.LivingSpace = v.LivingSpace
		pt.CoInsured = v.CoInsured
	case NorwegianTravelData:
		pt.CoInsured = v.CoInsured
	case DanishHomeContentsData:
		addr = v.Address
		pt.LivingSpace = v.LivingSpace
		pt.CoInsured = v.CoInsured
	case DanishAccidentData:
		addr = v.Address
		pt.CoInsured = v.CoInsured
	case DanishTravelData:
		addr = v.Address
		pt.CoInsured = v.CoInsured
	default:
		panic("models: unknown quote data variant")
	}
	pt.Street = nonEmpty(addr.Street)
	pt.City = nonEmpty(addr.City)
	pt.ZipCode = nonEmpty(addr.ZipCode)
	return pt
}
