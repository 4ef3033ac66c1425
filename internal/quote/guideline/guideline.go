// Package guideline evaluates quote payloads against underwriting rules.
//
// A Guideline is a named predicate over one payload variant. Guidelines are
// grouped into a RuleSet per payload kind and evaluated in ascending
// Priority; equal priorities keep declaration order. Every breach is
// collected, except that a breaching SkipAfter guideline stops evaluation
// of everything after it.
package guideline

import (
	"context"
	"fmt"
	"slices"
	"time"

	"underwriter/internal/quote/models"
	dErrors "underwriter/pkg/domain-errors"
)

// Priorities used by the built-in rule sets. Identity checks run first so
// that later checks never see an ssn already known to be malformed.
const (
	PrioritySSNFormat = 10
	PrioritySSNDate   = 20
	PriorityAge       = 30
	PriorityDebt      = 40
	PriorityIdentity  = 50
	PriorityProduct   = 100
)

// Input is what a Check sees.
type Input struct {
	Data models.Data
	Now  time.Time
}

// Check reports whether the guideline is breached. An error means the data
// could not be evaluated at all and is never a breach.
type Check func(ctx context.Context, in Input) (bool, error)

// Guideline is one underwriting rule.
type Guideline struct {
	Name      string
	Priority  int
	SkipAfter bool
	Breach    models.GuidelineBreach
	Check     Check
}

// RuleSet is the collection of guidelines for one payload kind.
type RuleSet []Guideline

// Ordered returns the guidelines in evaluation order.
func (rs RuleSet) Ordered() []Guideline {
	out := slices.Clone(rs)
	slices.SortStableFunc(out, func(a, b Guideline) int {
		return a.Priority - b.Priority
	})
	return out
}

// Evaluate runs rules against data and returns every breach in evaluation
// order. Evaluation stops after the first breaching SkipAfter guideline.
func Evaluate(ctx context.Context, rules RuleSet, in Input) ([]models.GuidelineBreach, error) {
	var breaches []models.GuidelineBreach
	for _, g := range rules.Ordered() {
		breached, err := g.Check(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("guideline %s: %w", g.Name, err)
		}
		if !breached {
			continue
		}
		breaches = append(breaches, g.Breach)
		if g.SkipAfter {
			break
		}
	}
	return breaches, nil
}

func missing(field string) error {
	return dErrors.New(dErrors.CodeValidation, "missing required field: "+field)
}

func malformed(field string, err error) error {
	return dErrors.Wrap(err, dErrors.CodeValidation, "malformed field: "+field)
}

func required(field string, v *int) (int, error) {
	if v == nil {
		return 0, missing(field)
	}
	return *v, nil
}

// on adapts a predicate over one payload variant into a Check.
func on[T models.Data](fn func(in Input, d T) (bool, error)) Check {
	return func(_ context.Context, in Input) (bool, error) {
		d, ok := in.Data.(T)
		if !ok {
			return false, dErrors.New(dErrors.CodeInvariantViolation,
				fmt.Sprintf("guideline for %T evaluated against %s", *new(T), in.Data.Kind()))
		}
		return fn(in, d)
	}
}

// field builds a product guideline over one required integer field.
func field[T models.Data](name string, get func(T) *int, breached func(T, int) bool) Check {
	return on(func(_ Input, d T) (bool, error) {
		v, err := required(name, get(d))
		if err != nil {
			return false, err
		}
		return breached(d, v), nil
	})
}

func product(name string, b models.GuidelineBreach, check Check) Guideline {
	return Guideline{Name: name, Priority: PriorityProduct, Breach: b, Check: check}
}
