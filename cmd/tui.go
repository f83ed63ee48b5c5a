package cmd

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/wealthyways/wealthyways/internal/config"
	"github.com/wealthyways/wealthyways/internal/logging"
	"github.com/wealthyways/wealthyways/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:         "tui",
	Short:       "Launch the interactive advisor",
	Annotations: interactive,
	RunE:        runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	var logFile io.Closer
	if flagQuiet {
		logging.Discard()
	} else {
		f, err := logging.SetupFile(config.LogPath(), logging.ParseLevel(settings.Log.Level))
		if err != nil {
			logging.Discard()
		} else {
			logFile = f
		}
	}
	if logFile != nil {
		defer func() { _ = logFile.Close() }()
	}

	// Force TrueColor profile so the theme colors render.
	lipgloss.SetColorProfile(termenv.TrueColor)

	history := openHistory()
	defer closeHistory(history)

	app := tui.NewApp(tui.Options{
		ModelPath: settings.Model.Path,
		Currency:  settings.Appearance.Currency,
		History:   history,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
