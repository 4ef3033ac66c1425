package models

import (
	"errors"
	"log/slog"
	"strings"
	"time"
)

// ErrNoBirthDate is returned when neither a birth date nor a parsable ssn is
// available to derive an age from.
var ErrNoBirthDate = errors.New("no birth date or ssn to derive age from")

// Person is the identified natural person a policy is written for.
type Person struct {
	SSN         string    `json:"ssn,omitempty"`
	BirthDate   time.Time `json:"birthDate,omitzero"`
	FirstName   string    `json:"firstName,omitempty"`
	LastName    string    `json:"lastName,omitempty"`
	Email       string    `json:"email,omitempty"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
}

// PolicyHolder is implemented by every payload variant.
type PolicyHolder interface {
	Holder() Person
}

// ResolveBirthDate prefers the declared birth date and falls back to the ssn.
func (p Person) ResolveBirthDate(m Market) (time.Time, error) {
	if !p.BirthDate.IsZero() {
		return p.BirthDate, nil
	}
	if p.SSN == "" {
		return time.Time{}, ErrNoBirthDate
	}
	return BirthDateFromSSN(m, p.SSN)
}

// Age returns the holder's age at now in the market's time zone.
func (p Person) Age(m Market, now time.Time) (int, error) {
	birth, err := p.ResolveBirthDate(m)
	if err != nil {
		return 0, err
	}
	return AgeAt(birth, now, m.Location()), nil
}

// SamePerson reports whether two holders carry identical personal details.
func (p Person) SamePerson(o Person) bool {
	return NormalizeSSN(p.SSN) == NormalizeSSN(o.SSN) &&
		p.FirstName == o.FirstName &&
		p.LastName == o.LastName &&
		strings.EqualFold(p.Email, o.Email) &&
		p.BirthDate.Equal(o.BirthDate)
}

// LogValue keeps personal data out of logs.
func (p Person) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("ssn", keepTail(NormalizeSSN(p.SSN), 2)),
		slog.Bool("has_birth_date", !p.BirthDate.IsZero()),
		slog.String("first_name", maskTail(p.FirstName, len(p.FirstName)-1)),
		slog.String("last_name", maskTail(p.LastName, len(p.LastName)-1)),
		slog.String("email", maskEmail(p.Email)),
		slog.String("phone", keepTail(p.PhoneNumber, 2)),
	)
}

// maskTail hides the last n runes of s.
func maskTail(s string, n int) string {
	r := []rune(s)
	if len(r) == 0 {
		return ""
	}
	if n <= 0 || n > len(r) {
		n = len(r)
	}
	for i := len(r) - n; i < len(r); i++ {
		r[i] = '*'
	}
	return string(r)
}

// keepTail hides all but the last n runes of s.
func keepTail(s string, n int) string {
	r := []rune(s)
	if n < 0 || n >= len(r) {
		n = 0
	}
	for i := 0; i < len(r)-n; i++ {
		r[i] = '*'
	}
	return string(r)
}

func maskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return maskTail(email, len(email))
	}
	return email[:1] + strings.Repeat("*", at-1) + email[at:]
}
