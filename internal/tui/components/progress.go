package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/wealthyways/wealthyways/internal/advisor"
	"github.com/wealthyways/wealthyways/internal/cli"
	"github.com/wealthyways/wealthyways/internal/tui/theme"
)

// ColorForRatio returns the bar color for a display ratio: green past the
// secure threshold, amber past the steady one, red otherwise.
func ColorForRatio(ratio float64) lipgloss.Color {
	t := theme.Active
	switch {
	case ratio > advisor.SecureThreshold/100:
		return t.Success
	case ratio > advisor.SteadyThreshold/100:
		return t.Warning
	default:
		return t.Danger
	}
}

// ScoreBar renders the saving score as a progress bar followed by its
// percentage. ratio is clamped to [0, 1].
func ScoreBar(ratio float64, barWidth int) string {
	t := theme.Active
	ratio = min(max(ratio, 0), 1)
	color := ColorForRatio(ratio)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(max(barWidth, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	return bar.ViewAs(ratio) + " " + pctStyle.Render(fmt.Sprintf("%3.0f%%", ratio*100))
}

// ScoreCard renders the saving score bar, the raw score and the tier
// commentary, with a celebration line for the top tier.
func ScoreCard(adv advisor.Advice, outerWidth int) string {
	t := theme.Active
	inner := CardInnerWidth(outerWidth)

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	commentStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Width(inner)
	celebrateStyle := lipgloss.NewStyle().Foreground(t.Success).Bold(true)

	body := ScoreBar(adv.DisplayRatio, inner-6) + "\n" +
		mutedStyle.Render("score ") + valueStyle.Render(cli.FormatScore(adv.Score)) + "\n\n"
	if adv.Tier.Celebrate() {
		body += celebrateStyle.Render("✦ ✧ ✦  financially secure  ✦ ✧ ✦") + "\n"
	}
	body += commentStyle.Render(adv.Commentary)

	return ContentCard("Your Saving Score", body, outerWidth)
}
