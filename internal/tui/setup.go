package tui

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/wealthyways/wealthyways/internal/config"
	"github.com/wealthyways/wealthyways/internal/tui/theme"
)

// SetupValues holds the answers of the setup wizard.
type SetupValues struct {
	Theme     string
	ModelPath string
	Currency  string
	History   bool
}

// NewSetupValues seeds the wizard with the current configuration.
func NewSetupValues(cfg config.Config) *SetupValues {
	return &SetupValues{
		Theme:     cfg.Appearance.Theme,
		ModelPath: cfg.Model.Path,
		Currency:  cfg.Appearance.Currency,
		History:   cfg.History.Enabled,
	}
}

// Apply copies the answers into cfg. Blank text answers keep the old value.
func (v *SetupValues) Apply(cfg *config.Config) {
	if v.Theme != "" {
		cfg.Appearance.Theme = theme.ByName(v.Theme).Name
	}
	if p := strings.TrimSpace(v.ModelPath); p != "" {
		cfg.Model.Path = p
	}
	if c := strings.TrimSpace(v.Currency); c != "" {
		cfg.Appearance.Currency = c
	}
	cfg.History.Enabled = v.History
}

// NewSetupForm builds the first-run configuration wizard.
func NewSetupForm(v *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to WealthyWays").
				Description("Anni reads your monthly numbers and suggests where to focus.\nLet's set up a few things."),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Model file").
				Description("Path to the trained classifier (JSON tree ensemble)").
				Value(&v.ModelPath),
			huh.NewInput().
				Title("Currency symbol").
				Description("Shown in front of every amount").
				CharLimit(4).
				Value(&v.Currency),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&v.Theme),
			huh.NewConfirm().
				Title("Keep a history of evaluations?").
				Description("Stored locally in SQLite; never leaves this machine").
				Affirmative("Yes").
				Negative("No").
				Value(&v.History),
		),
	).WithTheme(theme.Active.Form())
}
