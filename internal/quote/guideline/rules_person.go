package guideline

import (
	"context"
	"errors"
	"time"

	"underwriter/internal/quote/models"
	dErrors "underwriter/pkg/domain-errors"
)

// DebtChecker asks the credit bureau whether a holder may be insured. An
// empty result means the check passed.
type DebtChecker interface {
	Check(ctx context.Context, holder models.Person) ([]string, error)
}

func holderCheck(fn func(ctx context.Context, in Input, p models.Person, m models.Market) (bool, error)) Check {
	return func(ctx context.Context, in Input) (bool, error) {
		return fn(ctx, in, in.Data.Holder(), in.Data.Kind().Market())
	}
}

// ssnLength breaches when the ssn does not have the market's digit count.
// Optional ssns are only checked when given.
func ssnLength(digits int, optional bool) Guideline {
	return Guideline{
		Name:      "ssn_length",
		Priority:  PrioritySSNFormat,
		SkipAfter: true,
		Breach:    breach(CodeInvalidSSNLength, "ssn has the wrong number of digits"),
		Check: holderCheck(func(_ context.Context, _ Input, p models.Person, _ models.Market) (bool, error) {
			if p.SSN == "" {
				if optional {
					return false, nil
				}
				return false, missing("ssn")
			}
			return len(models.NormalizeSSN(p.SSN)) != digits, nil
		}),
	}
}

// ssnValid breaches when the ssn's date component or control digits are
// invalid.
func ssnValid(checksum func(string) bool) Guideline {
	return Guideline{
		Name:      "ssn_valid",
		Priority:  PrioritySSNDate,
		SkipAfter: true,
		Breach:    breach(CodeInvalidSSN, "ssn is not valid"),
		Check: holderCheck(func(_ context.Context, _ Input, p models.Person, m models.Market) (bool, error) {
			if p.SSN == "" {
				return false, nil
			}
			if _, err := models.BirthDateFromSSN(m, p.SSN); err != nil {
				return true, nil
			}
			return checksum != nil && !checksum(p.SSN), nil
		}),
	}
}

func minimumAge() Guideline {
	return Guideline{
		Name:      "minimum_age",
		Priority:  PriorityAge,
		SkipAfter: true,
		Breach:    breach(CodeUnderage, "applicant must be at least 18 years old"),
		Check: holderCheck(func(_ context.Context, in Input, p models.Person, m models.Market) (bool, error) {
			age, err := p.Age(m, in.Now)
			if err != nil {
				return false, ageError(err)
			}
			return age < MinAge, nil
		}),
	}
}

func debtCheck(debt DebtChecker) Guideline {
	return Guideline{
		Name:      "debt_check",
		Priority:  PriorityDebt,
		SkipAfter: true,
		Breach:    breach(CodeDebtCheck, "applicant did not pass the debt check"),
		Check: holderCheck(func(ctx context.Context, _ Input, p models.Person, _ models.Market) (bool, error) {
			reasons, err := debt.Check(ctx, p)
			if err != nil {
				return false, dErrors.Wrap(err, dErrors.CodeUnavailable, "debt check failed")
			}
			return len(reasons) > 0, nil
		}),
	}
}

func ssnMatchesBirthDate() Guideline {
	return Guideline{
		Name:     "ssn_matches_birth_date",
		Priority: PriorityIdentity,
		Breach:   breach(CodeSSNDoesNotMatchBirthDate, "ssn does not match the birth date"),
		Check: holderCheck(func(_ context.Context, _ Input, p models.Person, m models.Market) (bool, error) {
			if p.SSN == "" || p.BirthDate.IsZero() {
				return false, nil
			}
			fromSSN, err := models.BirthDateFromSSN(m, p.SSN)
			if err != nil {
				return false, malformed("ssn", err)
			}
			return !sameDate(fromSSN, p.BirthDate), nil
		}),
	}
}

func ageError(err error) error {
	if errors.Is(err, models.ErrNoBirthDate) {
		return missing("birthDate")
	}
	return malformed("ssn", err)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func swedishPersonRules(debt DebtChecker) RuleSet {
	return RuleSet{
		ssnLength(12, false),
		ssnValid(models.ValidSwedishChecksum),
		minimumAge(),
		debtCheck(debt),
		ssnMatchesBirthDate(),
	}
}

func norwegianPersonRules() RuleSet {
	return RuleSet{
		ssnLength(11, true),
		ssnValid(models.ValidNorwegianChecksum),
		minimumAge(),
		ssnMatchesBirthDate(),
	}
}

func danishPersonRules() RuleSet {
	return RuleSet{
		ssnLength(10, false),
		ssnValid(nil),
		minimumAge(),
		ssnMatchesBirthDate(),
	}
}
