// Package tui provides the interactive Bubble Tea advisor for WealthyWays.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/wealthyways/wealthyways/internal/advisor"
	"github.com/wealthyways/wealthyways/internal/classifier"
	"github.com/wealthyways/wealthyways/internal/store"
	"github.com/wealthyways/wealthyways/internal/tui/components"
	"github.com/wealthyways/wealthyways/internal/tui/theme"
)

type state int

const (
	stateLoading state = iota
	stateFailed
	stateForm
	stateResult
)

// ModelLoadedMsg is sent when the classifier artifact finishes loading.
type ModelLoadedMsg struct {
	Model advisor.Classifier
	Err   error
}

// HistorySavedMsg is sent when a background history write completes.
type HistorySavedMsg struct {
	Record store.Record
	Err    error
}

// TrendMsg carries recent saving scores from history, oldest first.
type TrendMsg struct {
	Scores []float64
}

// Options configures a new App.
type Options struct {
	ModelPath string
	Currency  string
	// History is optional; nil disables saving.
	History *store.History
}

// App is the root Bubble Tea model.
type App struct {
	opts Options

	state  state
	model  advisor.Classifier
	err    error
	advice advisor.Advice

	form   *huh.Form
	values *formValues
	trend  []float64

	// UI state
	width    int
	height   int
	showHelp bool
	showTip  bool
	status   string

	spinner spinner.Model
}

const (
	minTerminalWidth = 60
	wideWidth        = 100
	maxContentWidth  = 120

	historyTimeout = 5 * time.Second
	trendLength    = 12
)

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	return App{
		opts:    opts,
		state:   stateLoading,
		values:  &formValues{},
		spinner: sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		loadModelCmd(a.opts.ModelPath),
		a.spinner.Tick,
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(a.formWidth())
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.state {
		case stateLoading:
			if key == "q" {
				return a, tea.Quit
			}
			return a, nil
		case stateFailed:
			// Without a model there is nothing to do but leave.
			if key == "q" || key == "esc" {
				return a, tea.Quit
			}
			return a, nil
		case stateForm:
			return a.updateForm(msg)
		case stateResult:
			return a.updateResult(key)
		}
		return a, nil

	case ModelLoadedMsg:
		if msg.Err != nil {
			slog.Error("loading model failed", "path", a.opts.ModelPath, "err", msg.Err)
			a.state = stateFailed
			a.err = msg.Err
			return a, nil
		}
		slog.Info("model loaded", "path", a.opts.ModelPath)
		a.model = msg.Model
		return a.startForm()

	case HistorySavedMsg:
		if msg.Err != nil {
			slog.Warn("saving history failed", "err", msg.Err)
			a.status = "history not saved"
			return a, nil
		}
		slog.Debug("history saved", "id", msg.Record.ID)
		a.status = "saved to history"
		return a, loadTrendCmd(a.opts.History)

	case TrendMsg:
		a.trend = msg.Scores
		return a, nil

	case spinner.TickMsg:
		if a.state == stateLoading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the form (cursor blinks, etc.)
	if a.state == stateForm && a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		return a.submit()
	case huh.StateAborted:
		return a, tea.Quit
	}
	return a, cmd
}

func (a App) updateResult(key string) (tea.Model, tea.Cmd) {
	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q", "esc":
		return a, tea.Quit
	case "enter", "n":
		return a.startForm()
	case "t":
		a.showTip = !a.showTip
	}
	return a, nil
}

// startForm shows the snapshot form, prefilled with the last values entered.
func (a App) startForm() (tea.Model, tea.Cmd) {
	a.state = stateForm
	a.showTip = false
	a.showHelp = false
	a.form = newSnapshotForm(a.values).
		WithTheme(theme.Active.Form()).
		WithShowHelp(true)
	if a.width > 0 {
		a.form = a.form.WithWidth(a.formWidth())
	}
	return a, a.form.Init()
}

// submit evaluates the completed form and moves to the result view.
func (a App) submit() (tea.Model, tea.Cmd) {
	snap, err := a.values.snapshot()
	if err == nil {
		a.advice, err = advisor.Evaluate(snap, a.model)
	}
	if err != nil {
		// The form validates each field, so this is an unknown label or a
		// broken model; surface it instead of showing stale advice.
		slog.Error("evaluation failed", "err", err)
		a.state = stateFailed
		a.err = err
		return a, nil
	}

	slog.Info("evaluated snapshot",
		"category", a.advice.Category.String(),
		"score", a.advice.Score,
		"tier", string(a.advice.Tier))

	a.state = stateResult
	a.form = nil
	a.status = ""
	if a.opts.History == nil {
		return a, nil
	}
	a.status = "saving..."
	return a, saveHistoryCmd(a.opts.History, store.NewRecord(a.advice, a.opts.ModelPath))
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) formWidth() int {
	return min(a.contentWidth()-4, 72)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	switch a.state {
	case stateLoading:
		return a.viewLoading()
	case stateFailed:
		return a.viewFailed()
	case stateForm:
		return a.viewForm()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewResult()
}

func (a App) viewTooNarrow() string {
	return fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  wealthyways needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
}

func (a App) header() string {
	t := theme.Active
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	return logoStyle.Render("◈ WealthyWays") + subtitleStyle.Render(" · Financial Assistant")
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(2, 4)

	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(a.header())
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Loading model " + filepath.Base(a.opts.ModelPath)))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()))
}

func (a App) viewFailed() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Danger).
		Padding(1, 3).
		Width(min(a.contentWidth()-4, 72))

	errStyle := lipgloss.NewStyle().Foreground(t.Danger).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	b.WriteString(a.header())
	b.WriteString("\n\n")
	b.WriteString(errStyle.Render("✖ Anni can't give advice right now"))
	b.WriteString("\n\n")
	b.WriteString(textStyle.Render(a.err.Error()))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("Check the model path with `wealthyways model`. Press q to quit."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()))
}

func (a App) viewForm() string {
	t := theme.Active
	introStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(a.header())
	b.WriteString("\n  ")
	b.WriteString(introStyle.Render("Hi, I'm Anni. Tell me about your month and I'll suggest where to focus."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(a.form.View()))
	return b.String()
}

func (a App) viewResult() string {
	t := theme.Active
	cw := a.contentWidth()

	var sections []string
	sections = append(sections, "", " "+a.header(), "")
	sections = append(sections, components.MetricCardRow(components.SnapshotMetrics(a.advice.Snapshot, a.opts.Currency), cw))

	if cw >= wideWidth {
		widths := components.LayoutRow(cw, 2)
		sections = append(sections, components.CardRow([]string{
			components.AdviceCard(a.advice, widths[0]),
			components.ScoreCard(a.advice, widths[1]),
		}))
	} else {
		sections = append(sections,
			components.AdviceCard(a.advice, cw),
			components.ScoreCard(a.advice, cw))
	}

	if len(a.trend) > 1 {
		trend := components.Sparkline(a.trend, t.Accent)
		sections = append(sections, components.ContentCard(
			fmt.Sprintf("Your last %d saving scores", len(a.trend)), trend, cw))
	}

	if a.showTip {
		tipStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Width(components.CardInnerWidth(cw))
		sections = append(sections, components.ContentCard("Bonus tip from Anni", tipStyle.Render(advisor.BonusTip), cw))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	status := components.RenderStatusBar(a.width, "[n]ew  [t]ip  [?]help  [q]uit", a.status)

	gap := a.height - lipgloss.Height(body) - lipgloss.Height(status)
	if gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	return body + "\n" + status
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	bindings := []struct{ key, desc string }{
		{"Enter n", "New evaluation (keeps your last numbers)"},
		{"t", "Toggle Anni's bonus tip"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()))
}

// loadModelCmd loads the classifier artifact off the UI goroutine.
func loadModelCmd(path string) tea.Cmd {
	return func() tea.Msg {
		m, err := classifier.Load(path)
		if err != nil {
			return ModelLoadedMsg{Err: err}
		}
		return ModelLoadedMsg{Model: m}
	}
}

// saveHistoryCmd stores an evaluation without blocking the UI.
func saveHistoryCmd(h *store.History, r store.Record) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
		defer cancel()

		saved, err := h.Save(ctx, r)
		return HistorySavedMsg{Record: saved, Err: err}
	}
}

// loadTrendCmd reads the most recent scores for the trend sparkline.
func loadTrendCmd(h *store.History) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
		defer cancel()

		recs, err := h.Recent(ctx, trendLength)
		if err != nil {
			slog.Warn("loading score trend failed", "err", err)
			return TrendMsg{}
		}
		scores := make([]float64, len(recs))
		for i, r := range recs {
			scores[len(recs)-1-i] = r.Score
		}
		return TrendMsg{Scores: scores}
	}
}
