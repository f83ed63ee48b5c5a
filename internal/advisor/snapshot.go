// Package advisor holds the WealthyWays decision function: it turns a monthly
// financial snapshot into a category, a saving score and the advice texts
// that go with them.
package advisor

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxAmount is the largest value accepted for any snapshot field.
const MaxAmount = 1e12

var maxAmountText = strconv.FormatFloat(MaxAmount, 'f', -1, 64)

// Feature column names, in the order the classifier was trained on.
const (
	FeatureIncome   = "income"
	FeatureExpenses = "expenses"
	FeatureSavings  = "savings"
	FeatureDebt     = "debt"
)

// Features lists the snapshot columns in training order.
var Features = []string{FeatureIncome, FeatureExpenses, FeatureSavings, FeatureDebt}

// ErrInvalidSnapshot is returned for negative, non-finite or oversized inputs.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Snapshot is one user's monthly financial picture.
type Snapshot struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Savings  float64 `json:"savings"`
	Debt     float64 `json:"debt"`
}

// Value returns the field named by a feature column.
func (s Snapshot) Value(feature string) (float64, bool) {
	switch feature {
	case FeatureIncome:
		return s.Income, true
	case FeatureExpenses:
		return s.Expenses, true
	case FeatureSavings:
		return s.Savings, true
	case FeatureDebt:
		return s.Debt, true
	}
	return 0, false
}

// Validate checks every field is finite, non-negative and at most MaxAmount.
func (s Snapshot) Validate() error {
	for _, f := range Features {
		v, _ := s.Value(f)
		if err := checkAmount(v); err != nil {
			return fmt.Errorf("%w: %s %v", ErrInvalidSnapshot, f, err)
		}
	}
	return nil
}

func checkAmount(v float64) error {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return errors.New("is not a finite number")
	case v < 0:
		return errors.New("must not be negative")
	case v > MaxAmount:
		return fmt.Errorf("exceeds %s", maxAmountText)
	}
	return nil
}

// ParseAmount reads a user-typed amount such as "1,50,000", "₹ 2500.50" or "".
// An empty field reads as zero, matching the form's default.
func ParseAmount(text string) (float64, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return r == '₹' || r == '$' || r == '€' || r == '£' || r == ' '
	})
	s = strings.NewReplacer(",", "", "_", "", " ", "").Replace(s)
	if s == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidSnapshot, text)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: amount must not be negative", ErrInvalidSnapshot)
	}
	if d.GreaterThan(decimal.NewFromFloat(MaxAmount)) {
		return 0, fmt.Errorf("%w: amount exceeds %s", ErrInvalidSnapshot, maxAmountText)
	}
	return d.InexactFloat64(), nil
}

// ParseSnapshot builds a Snapshot from four user-typed amounts.
func ParseSnapshot(income, expenses, savings, debt string) (Snapshot, error) {
	var s Snapshot
	fields := []struct {
		name string
		text string
		dst  *float64
	}{
		{FeatureIncome, income, &s.Income},
		{FeatureExpenses, expenses, &s.Expenses},
		{FeatureSavings, savings, &s.Savings},
		{FeatureDebt, debt, &s.Debt},
	}
	for _, f := range fields {
		v, err := ParseAmount(f.text)
		if err != nil {
			return Snapshot{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = v
	}
	return s, nil
}
