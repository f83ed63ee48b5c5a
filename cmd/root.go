package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/wealthyways/wealthyways/internal/classifier"
	"github.com/wealthyways/wealthyways/internal/config"
	"github.com/wealthyways/wealthyways/internal/logging"
	"github.com/wealthyways/wealthyways/internal/store"
	"github.com/wealthyways/wealthyways/internal/tui/theme"
)

var (
	flagModel     string
	flagNoHistory bool
	flagQuiet     bool
)

// settings is the effective configuration: file, then environment, then flags.
var settings = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "wealthyways",
	Short: "Anni, your personal financial assistant",
	Long: "Enter your monthly income, expenses, savings and debt; Anni classifies\n" +
		"your financial posture and suggests where to focus.",
	SilenceUsage:      true,
	Annotations:       interactive,
	PersistentPreRunE: loadSettings,
	RunE:              runTUI,
}

// interactive marks commands that hand the terminal to the TUI.
var interactive = map[string]string{"interactive": "true"}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagModel, "model", "m", "", "Path to the classifier model (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoHistory, "no-history", false, "Do not read or write evaluation history")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
}

// loadSettings runs before every command: it resolves the configuration and
// installs the logger.
func loadSettings(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flagModel != "" {
		cfg.Model.Path = flagModel
	}
	if flagNoHistory {
		cfg.History.Enabled = false
	}
	settings = cfg
	theme.SetActive(cfg.Appearance.Theme)

	// The TUI owns the terminal and sets up file logging itself.
	if isInteractive(cmd) {
		return nil
	}
	level := logging.ParseLevel(cfg.Log.Level)
	if flagQuiet {
		level = slog.LevelError
	}
	logging.Setup(level)
	return nil
}

func isInteractive(cmd *cobra.Command) bool {
	return cmd.Annotations["interactive"] == "true"
}

// loadModel loads the configured classifier artifact.
func loadModel() (*classifier.Model, error) {
	m, err := classifier.Load(settings.Model.Path)
	if err != nil {
		return nil, fmt.Errorf("loading model: %w", err)
	}
	info := m.Info()
	slog.Info("model loaded", "path", info.Path, "trees", info.Trees, "classes", len(info.Classes))
	return m, nil
}

// openHistory opens the history database, or returns nil when history is
// disabled or unavailable. History is best-effort and never fails a command.
func openHistory() *store.History {
	if !settings.History.Enabled {
		return nil
	}
	h, err := store.Open(settings.HistoryPath())
	if err != nil {
		slog.Warn("history unavailable", "path", settings.HistoryPath(), "err", err)
		return nil
	}
	return h
}

func closeHistory(h *store.History) {
	if h == nil {
		return
	}
	if err := h.Close(); err != nil {
		slog.Warn("closing history", "err", err)
	}
}
