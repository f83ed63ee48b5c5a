package advisor

import (
	"errors"
	"fmt"
)

// ErrUnknownCategory is returned when the classifier yields a label outside
// the four known categories.
var ErrUnknownCategory = errors.New("unknown category label")

// Category is the classifier's verdict on a snapshot.
type Category string

// The four labels the classifier was trained to produce.
const (
	InvestmentReady Category = "Investment Ready"
	CutExpenses     Category = "Cut Expenses"
	BasicSaving     Category = "Basic Saving"
	EmergencyMode   Category = "Emergency Mode"
)

// Categories lists every known category, strongest position first.
var Categories = []Category{InvestmentReady, BasicSaving, CutExpenses, EmergencyMode}

// Tone is the presentation mood of a piece of advice.
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneInfo    Tone = "info"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
)

type categoryInfo struct {
	tone   Tone
	advice string
}

var categoryTable = map[Category]categoryInfo{
	InvestmentReady: {
		tone:   ToneSuccess,
		advice: "You're in a strong financial position! Anni suggests exploring SIPs, mutual funds, or long-term stock investments.",
	},
	CutExpenses: {
		tone:   ToneWarning,
		advice: "Your expenses seem high relative to income. Anni recommends reviewing subscriptions, food spending, and luxury buys.",
	},
	BasicSaving: {
		tone:   ToneInfo,
		advice: "You're saving decently. Anni suggests automating savings and gradually increasing the amount.",
	},
	EmergencyMode: {
		tone:   ToneDanger,
		advice: "You're in a red zone. Reduce unnecessary spending and build at least 3 months of emergency savings.",
	},
}

// ParseCategory maps a raw classifier label to a Category by exact match.
func ParseCategory(label string) (Category, error) {
	c := Category(label)
	if _, ok := categoryTable[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, label)
	}
	return c, nil
}

// Known reports whether c is one of the four categories.
func (c Category) Known() bool {
	_, ok := categoryTable[c]
	return ok
}

// Advice returns the fixed guidance text for c, or "" for an unknown category.
func (c Category) Advice() string {
	return categoryTable[c].advice
}

// Tone returns the presentation mood for c.
func (c Category) Tone() Tone {
	return categoryTable[c].tone
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}
