// Package components provides reusable TUI widgets for the WealthyWays advisor.
package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/wealthyways/wealthyways/internal/advisor"
	"github.com/wealthyways/wealthyways/internal/cli"
	"github.com/wealthyways/wealthyways/internal/tui/theme"
)

// Metric is one labeled figure shown in a MetricCard.
type Metric struct {
	Label string
	Value string
	Note  string
}

// LayoutRow distributes totalWidth into n widths that sum to exactly totalWidth.
// First items absorb the remainder from integer division.
func LayoutRow(totalWidth, n int) []int {
	if n <= 0 {
		return nil
	}
	base := totalWidth / n
	remainder := totalWidth % n
	widths := make([]int, n)
	for i := range widths {
		widths[i] = base
		if i < remainder {
			widths[i]++
		}
	}
	return widths
}

// MetricCard renders a small card with a label, value and optional note.
// outerWidth is the total rendered width including border.
func MetricCard(m Metric, outerWidth int) string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Width(max(outerWidth-2, 10)).
		Padding(0, 1)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	noteStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	content := labelStyle.Render(m.Label) + "\n" + valueStyle.Render(m.Value)
	if m.Note != "" {
		content += "\n" + noteStyle.Render(m.Note)
	}
	return cardStyle.Render(content)
}

// MetricCardRow renders a row of metric cards whose widths sum to totalWidth.
func MetricCardRow(metrics []Metric, totalWidth int) string {
	if len(metrics) == 0 {
		return ""
	}

	widths := LayoutRow(totalWidth, len(metrics))
	rendered := make([]string, 0, len(metrics))
	for i, m := range metrics {
		rendered = append(rendered, MetricCard(m, widths[i]))
	}
	return CardRow(rendered)
}

// SnapshotMetrics lists the four snapshot fields as metrics.
func SnapshotMetrics(s advisor.Snapshot, currency string) []Metric {
	return []Metric{
		{Label: "Income", Value: cli.FormatAmount(s.Income, currency), Note: "take-home"},
		{Label: "Expenses", Value: cli.FormatAmount(s.Expenses, currency)},
		{Label: "Savings", Value: cli.FormatAmount(s.Savings, currency)},
		{Label: "Debt", Value: cli.FormatAmount(s.Debt, currency)},
	}
}

// ContentCard renders a bordered content card with an optional title.
// outerWidth controls the total rendered width including border.
func ContentCard(title, body string, outerWidth int) string {
	return toneCard(title, body, outerWidth, theme.Active.Border, theme.Active.TextMuted)
}

// AdviceCard renders the category and its advice, bordered in the tone color.
func AdviceCard(adv advisor.Advice, outerWidth int) string {
	t := theme.Active
	color := t.Tone(adv.Tone)

	titleStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	bodyStyle := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Width(CardInnerWidth(outerWidth))

	body := titleStyle.Render(cli.ToneIcon(adv.Tone)+" "+adv.Category.String()) + "\n\n" +
		bodyStyle.Render(adv.Message)

	return toneCard("Anni's Advice", body, outerWidth, color, t.AccentBright)
}

func toneCard(title, body string, outerWidth int, border, titleColor lipgloss.Color) string {
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(max(outerWidth-2, 10)).
		Padding(0, 1)

	titleStyle := lipgloss.NewStyle().
		Foreground(titleColor).
		Bold(true)

	content := ""
	if title != "" {
		content = titleStyle.Render(title) + "\n"
	}
	content += body

	return cardStyle.Render(content)
}

// CardRow joins pre-rendered card strings horizontally.
func CardRow(cards []string) string {
	if len(cards) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// CardInnerWidth returns the usable text width inside a ContentCard
// given its outer width (subtracts border + padding).
func CardInnerWidth(outerWidth int) int {
	return max(outerWidth-4, 10)
}
