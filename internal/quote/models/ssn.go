package models

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	ErrSSNLength = errors.New("ssn has wrong length")
	ErrSSNFormat = errors.New("ssn is not a valid national identity number")
)

// NormalizeSSN strips separators commonly typed into identity numbers.
func NormalizeSSN(ssn string) string {
	return strings.NewReplacer("-", "", " ", "", "+", "").Replace(ssn)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func date(year, month, day int) (time.Time, bool) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// SwedishBirthDate parses the YYYYMMDD prefix of a 12 digit Swedish
// personal identity number.
func SwedishBirthDate(ssn string) (time.Time, error) {
	d := NormalizeSSN(ssn)
	if len(d) != 12 {
		return time.Time{}, ErrSSNLength
	}
	if !allDigits(d) {
		return time.Time{}, ErrSSNFormat
	}
	t, ok := date(atoi(d[0:4]), atoi(d[4:6]), atoi(d[6:8]))
	if !ok {
		return time.Time{}, ErrSSNFormat
	}
	return t, nil
}

// ValidSwedishChecksum runs the Luhn check over the last ten digits.
func ValidSwedishChecksum(ssn string) bool {
	d := NormalizeSSN(ssn)
	if len(d) != 12 || !allDigits(d) {
		return false
	}
	sum := 0
	for i, r := range d[2:] {
		n := int(r - '0')
		if i%2 == 0 {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum += n
	}
	return sum%10 == 0
}

// NorwegianBirthDate parses the DDMMYY prefix of an 11 digit Norwegian
// national identity number, resolving the century from the individual
// number. D-numbers (day + 40) are accepted.
func NorwegianBirthDate(ssn string) (time.Time, error) {
	d := NormalizeSSN(ssn)
	if len(d) != 11 {
		return time.Time{}, ErrSSNLength
	}
	if !allDigits(d) {
		return time.Time{}, ErrSSNFormat
	}
	day, month, yy := atoi(d[0:2]), atoi(d[2:4]), atoi(d[4:6])
	if day > 40 {
		day -= 40
	}
	individual := atoi(d[6:9])

	var century int
	switch {
	case individual <= 499:
		century = 1900
	case individual <= 749 && yy >= 54:
		century = 1800
	case yy <= 39:
		century = 2000
	case individual >= 900:
		century = 1900
	default:
		return time.Time{}, ErrSSNFormat
	}

	t, ok := date(century+yy, month, day)
	if !ok {
		return time.Time{}, ErrSSNFormat
	}
	return t, nil
}

// ValidNorwegianChecksum verifies both mod-11 control digits.
func ValidNorwegianChecksum(ssn string) bool {
	d := NormalizeSSN(ssn)
	if len(d) != 11 || !allDigits(d) {
		return false
	}
	control := func(weights []int) int {
		sum := 0
		for i, w := range weights {
			sum += int(d[i]-'0') * w
		}
		k := 11 - sum%11
		if k == 11 {
			k = 0
		}
		return k
	}
	k1 := control([]int{3, 7, 6, 1, 8, 9, 4, 5, 2})
	k2 := control([]int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2})
	return k1 < 10 && k2 < 10 && k1 == int(d[9]-'0') && k2 == int(d[10]-'0')
}

// DanishBirthDate parses the DDMMYY prefix of a 10 digit CPR number,
// resolving the century from the seventh digit. CPR numbers issued since
// 2007 carry no checksum, so only structure and date are validated.
func DanishBirthDate(ssn string) (time.Time, error) {
	d := NormalizeSSN(ssn)
	if len(d) != 10 {
		return time.Time{}, ErrSSNLength
	}
	if !allDigits(d) {
		return time.Time{}, ErrSSNFormat
	}
	day, month, yy := atoi(d[0:2]), atoi(d[2:4]), atoi(d[4:6])
	seventh := int(d[6] - '0')

	century := 1900
	switch {
	case seventh == 4 || seventh == 9:
		if yy <= 36 {
			century = 2000
		}
	case seventh >= 5 && seventh <= 8:
		if yy <= 57 {
			century = 2000
		} else {
			century = 1800
		}
	}

	t, ok := date(century+yy, month, day)
	if !ok {
		return time.Time{}, ErrSSNFormat
	}
	return t, nil
}

// BirthDateFromSSN dispatches on market.
func BirthDateFromSSN(m Market, ssn string) (time.Time, error) {
	switch m {
	case MarketNorway:
		return NorwegianBirthDate(ssn)
	case MarketDenmark:
		return DanishBirthDate(ssn)
	default:
		return SwedishBirthDate(ssn)
	}
}

// AgeAt returns the number of whole years between birth and now, both
// compared as calendar dates in loc.
func AgeAt(birth, now time.Time, loc *time.Location) int {
	n := now.In(loc)
	age := n.Year() - birth.Year()
	if int(n.Month()) < int(birth.Month()) ||
		(n.Month() == birth.Month() && n.Day() < birth.Day()) {
		age--
	}
	return age
}
