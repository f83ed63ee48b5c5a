package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wealthyways/wealthyways/internal/advisor"
)

// Palette (the WealthyWays meadow greens, tuned for dark terminals)
var (
	ColorBorder    = lipgloss.Color("#2F4F4A")
	ColorTextDim   = lipgloss.Color("#5E7A74")
	ColorTextMuted = lipgloss.Color("#8FB3A9")
	ColorText      = lipgloss.Color("#F7FDFC")
	ColorAccent    = lipgloss.Color("#16A34A")
	ColorGreen     = lipgloss.Color("#22C55E")
	ColorBlue      = lipgloss.Color("#38BDF8")
	ColorOrange    = lipgloss.Color("#F59E0B")
	ColorRed       = lipgloss.Color("#EF4444")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// ToneColor maps an advice tone to its display color.
func ToneColor(t advisor.Tone) lipgloss.Color {
	switch t {
	case advisor.ToneSuccess:
		return ColorGreen
	case advisor.ToneWarning:
		return ColorOrange
	case advisor.ToneDanger:
		return ColorRed
	default:
		return ColorBlue
	}
}

// ToneIcon is the glyph shown in front of advice of the given tone.
func ToneIcon(t advisor.Tone) string {
	switch t {
	case advisor.ToneSuccess:
		return "▲"
	case advisor.ToneWarning:
		return "▼"
	case advisor.ToneDanger:
		return "✖"
	default:
		return "●"
	}
}

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	// RightAlign marks columns to right-align; the first column is always left.
	RightAlign []bool
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(60).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table with headers and rows. A row holding
// the single cell "---" draws a separator.
func RenderTable(t Table) string {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = max(widths[i], lipgloss.Width(h))
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	rule := func(left, mid, right string) string {
		var b strings.Builder
		b.WriteString(left)
		for i, w := range widths {
			b.WriteString(strings.Repeat("─", w+2))
			if i < numCols-1 {
				b.WriteString(mid)
			}
		}
		b.WriteString(right)
		return dimStyle.Render(b.String()) + "\n"
	}

	pad := func(col int, cell string) string {
		gap := strings.Repeat(" ", widths[col]-lipgloss.Width(cell))
		if col > 0 && col < len(t.RightAlign) && t.RightAlign[col] {
			return " " + gap + cell + " "
		}
		return " " + cell + gap + " "
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	b.WriteString(rule("╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(pad(i, h)))
			b.WriteString(dimStyle.Render("│"))
		}
		b.WriteString("\n")
		b.WriteString(rule("├", "┼", "┤"))
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			b.WriteString(rule("├", "┼", "┤"))
			continue
		}
		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(valueStyle.Render(pad(i, cell)))
			b.WriteString(dimStyle.Render("│"))
		}
		b.WriteString("\n")
	}
	b.WriteString(rule("╰", "┴", "╯"))

	return b.String()
}

// RenderScoreBar renders a text bar filled to ratio (clamped to [0, 1]).
func RenderScoreBar(ratio float64, width int) string {
	ratio = min(max(ratio, 0), 1)
	filled := int(ratio * float64(width))

	color := ColorRed
	switch {
	case ratio > advisor.SecureThreshold/100:
		color = ColorGreen
	case ratio > advisor.SteadyThreshold/100:
		color = ColorOrange
	}

	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("[%s] %s", bar, mutedStyle.Render(FormatPercent(ratio)))
}

// RenderAdvice renders a full evaluation for non-interactive output.
func RenderAdvice(adv advisor.Advice, currency string, showTip bool) string {
	toneStyle := lipgloss.NewStyle().Foreground(ToneColor(adv.Tone)).Bold(true)
	wrap := lipgloss.NewStyle().Width(58)

	var b strings.Builder
	b.WriteString(RenderTable(Table{
		Headers:    []string{"Snapshot", "Monthly"},
		RightAlign: []bool{false, true},
		Rows: [][]string{
			{"Income", FormatAmount(adv.Snapshot.Income, currency)},
			{"Expenses", FormatAmount(adv.Snapshot.Expenses, currency)},
			{"Savings", FormatAmount(adv.Snapshot.Savings, currency)},
			{"Debt", FormatAmount(adv.Snapshot.Debt, currency)},
		},
	}))
	b.WriteString("\n")

	b.WriteString("  " + headerStyle.Render("Anni's Advice") + "\n")
	b.WriteString("  " + toneStyle.Render(ToneIcon(adv.Tone)+" "+adv.Category.String()) + "\n")
	for _, line := range strings.Split(wrap.Render(adv.Message), "\n") {
		b.WriteString("  " + valueStyle.Render(strings.TrimRight(line, " ")) + "\n")
	}
	b.WriteString("\n")

	b.WriteString("  " + headerStyle.Render("Your Saving Score") + "\n")
	b.WriteString("  " + RenderScoreBar(adv.DisplayRatio, 40) + "\n")
	b.WriteString("  " + mutedStyle.Render("score ") + valueStyle.Render(FormatScore(adv.Score)) + "\n")
	if adv.Tier.Celebrate() {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(ColorGreen).Render("✦ ✧ ✦  financially secure  ✦ ✧ ✦") + "\n")
	}
	b.WriteString("  " + valueStyle.Render(adv.Commentary) + "\n")

	if showTip {
		b.WriteString("\n")
		b.WriteString("  " + mutedStyle.Render("Bonus tip from Anni: ") + valueStyle.Render(advisor.BonusTip) + "\n")
	}
	return b.String()
}
