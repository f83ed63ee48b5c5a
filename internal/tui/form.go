package tui

import (
	"github.com/charmbracelet/huh"

	"github.com/wealthyways/wealthyways/internal/advisor"
)

// formValues holds the raw text of the snapshot form. It lives behind a
// pointer so huh can write to it while App is passed by value.
type formValues struct {
	income   string
	expenses string
	savings  string
	debt     string
}

func (v *formValues) snapshot() (advisor.Snapshot, error) {
	return advisor.ParseSnapshot(v.income, v.expenses, v.savings, v.debt)
}

func validateAmount(s string) error {
	_, err := advisor.ParseAmount(s)
	return err
}

func newSnapshotForm(v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Monthly Income").
				Description("Net take-home income").
				Placeholder("e.g. 50000").
				Value(&v.income).
				Validate(validateAmount),
			huh.NewInput().
				Title("Monthly Expenses").
				Description("All regular outflows incl. rent, bills, food").
				Placeholder("e.g. 30000").
				Value(&v.expenses).
				Validate(validateAmount),
			huh.NewInput().
				Title("Monthly Savings").
				Description("Amount you save after expenses").
				Placeholder("e.g. 10000").
				Value(&v.savings).
				Validate(validateAmount),
			huh.NewInput().
				Title("Total Debt").
				Description("Include EMIs, credit card dues, loans").
				Placeholder("e.g. 0").
				Value(&v.debt).
				Validate(validateAmount),
		),
	)
}
