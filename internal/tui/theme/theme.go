// Package theme defines color themes for the WealthyWays terminal UI.
package theme

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/wealthyways/wealthyways/internal/advisor"
)

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name         string
	Background   lipgloss.Color // Main app background
	Surface      lipgloss.Color // Card/panel backgrounds
	Border       lipgloss.Color // Subtle borders
	BorderAccent lipgloss.Color // Focused card borders
	TextDim      lipgloss.Color // Hints, disabled
	TextMuted    lipgloss.Color // Labels, metadata
	TextPrimary  lipgloss.Color // Primary content text
	Accent       lipgloss.Color // Brand green: titles, active states
	AccentBright lipgloss.Color
	Success      lipgloss.Color
	Info         lipgloss.Color
	Warning      lipgloss.Color
	Danger       lipgloss.Color
}

// Active is the currently selected theme.
var Active = Meadow

// Meadow is the default theme, built from the WealthyWays brand greens.
var Meadow = Theme{
	Name:         "meadow",
	Background:   lipgloss.Color("#0B1F1C"),
	Surface:      lipgloss.Color("#12302B"),
	Border:       lipgloss.Color("#1F4A43"),
	BorderAccent: lipgloss.Color("#16A34A"),
	TextDim:      lipgloss.Color("#4D736B"),
	TextMuted:    lipgloss.Color("#8FB3A9"),
	TextPrimary:  lipgloss.Color("#F7FDFC"),
	Accent:       lipgloss.Color("#16A34A"),
	AccentBright: lipgloss.Color("#D1F7E3"),
	Success:      lipgloss.Color("#22C55E"),
	Info:         lipgloss.Color("#38BDF8"),
	Warning:      lipgloss.Color("#F59E0B"),
	Danger:       lipgloss.Color("#EF4444"),
}

// FlexokiDark is a warm, paper-inspired dark theme.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   lipgloss.Color("#100F0F"),
	Surface:      lipgloss.Color("#1C1B1A"),
	Border:       lipgloss.Color("#403E3C"),
	BorderAccent: lipgloss.Color("#3AA99F"),
	TextDim:      lipgloss.Color("#575653"),
	TextMuted:    lipgloss.Color("#878580"),
	TextPrimary:  lipgloss.Color("#FFFCF0"),
	Accent:       lipgloss.Color("#3AA99F"),
	AccentBright: lipgloss.Color("#5BC8BE"),
	Success:      lipgloss.Color("#879A39"),
	Info:         lipgloss.Color("#4385BE"),
	Warning:      lipgloss.Color("#DA702C"),
	Danger:       lipgloss.Color("#D14D41"),
}

// Terminal uses ANSI 16 colors only - maximum compatibility.
var Terminal = Theme{
	Name:         "terminal",
	Background:   lipgloss.Color("0"),
	Surface:      lipgloss.Color("0"),
	Border:       lipgloss.Color("8"),
	BorderAccent: lipgloss.Color("2"),
	TextDim:      lipgloss.Color("8"),
	TextMuted:    lipgloss.Color("7"),
	TextPrimary:  lipgloss.Color("15"),
	Accent:       lipgloss.Color("2"),
	AccentBright: lipgloss.Color("10"),
	Success:      lipgloss.Color("10"),
	Info:         lipgloss.Color("12"),
	Warning:      lipgloss.Color("3"),
	Danger:       lipgloss.Color("9"),
}

// All available themes.
var All = []Theme{Meadow, FlexokiDark, Terminal}

// ByName returns a theme by its name, defaulting to Meadow.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return Meadow
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// Tone returns the color for an advice tone.
func (t Theme) Tone(tone advisor.Tone) lipgloss.Color {
	switch tone {
	case advisor.ToneSuccess:
		return t.Success
	case advisor.ToneWarning:
		return t.Warning
	case advisor.ToneDanger:
		return t.Danger
	default:
		return t.Info
	}
}

// Form returns a huh form theme matching t.
func (t Theme) Form() *huh.Theme {
	h := huh.ThemeBase()

	h.Focused.Base = h.Focused.Base.BorderForeground(t.BorderAccent)
	h.Focused.Title = h.Focused.Title.Foreground(t.Accent).Bold(true)
	h.Focused.Description = h.Focused.Description.Foreground(t.TextMuted)
	h.Focused.ErrorIndicator = h.Focused.ErrorIndicator.Foreground(t.Danger)
	h.Focused.ErrorMessage = h.Focused.ErrorMessage.Foreground(t.Danger)
	h.Focused.TextInput.Prompt = h.Focused.TextInput.Prompt.Foreground(t.Accent)
	h.Focused.TextInput.Cursor = h.Focused.TextInput.Cursor.Foreground(t.AccentBright)
	h.Focused.TextInput.Placeholder = h.Focused.TextInput.Placeholder.Foreground(t.TextDim)
	h.Focused.TextInput.Text = h.Focused.TextInput.Text.Foreground(t.TextPrimary)
	h.Focused.SelectSelector = h.Focused.SelectSelector.Foreground(t.Accent)
	h.Focused.SelectedOption = h.Focused.SelectedOption.Foreground(t.AccentBright)
	h.Focused.FocusedButton = h.Focused.FocusedButton.Foreground(t.TextPrimary).Background(t.Accent)

	h.Blurred = h.Focused
	h.Blurred.Base = h.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
	h.Blurred.Title = h.Blurred.Title.Foreground(t.TextMuted).Bold(false)

	return h
}
