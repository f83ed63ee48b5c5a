package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/wealthyways/wealthyways/internal/advisor"
	"github.com/wealthyways/wealthyways/internal/cli"
	"github.com/wealthyways/wealthyways/internal/store"
	"github.com/wealthyways/wealthyways/internal/tui/components"
)

var (
	flagLimit       int
	flagHistoryJSON bool
	flagYes         bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past evaluations, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every stored evaluation",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.Flags().IntVarP(&flagLimit, "limit", "l", 20, "Number of evaluations to show (0 for all)")
	historyCmd.Flags().BoolVar(&flagHistoryJSON, "json", false, "Print records as JSON")
	historyClearCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")

	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

var errHistoryDisabled = errors.New("history is disabled (enable it in `wealthyways setup` or drop --no-history)")

func mustHistory() (*store.History, error) {
	if !settings.History.Enabled {
		return nil, errHistoryDisabled
	}
	h, err := store.Open(settings.HistoryPath())
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	return h, nil
}

func runHistory(cmd *cobra.Command, _ []string) error {
	h, err := mustHistory()
	if err != nil {
		return err
	}
	defer closeHistory(h)

	records, err := h.Recent(cmd.Context(), flagLimit)
	if err != nil {
		return err
	}

	if flagHistoryJSON {
		if records == nil {
			records = []store.Record{}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("\n  No evaluations yet. Run `wealthyways` or `wealthyways advise` to get started.")
		return nil
	}

	counts, err := h.CountByCategory(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("EVALUATION HISTORY"))
	fmt.Println()

	cur := settings.Appearance.Currency
	now := time.Now()
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			cli.FormatAge(r.CreatedAt, now),
			r.Category.String(),
			cli.FormatScore(r.Score),
			cli.FormatAmount(r.Snapshot.Income, cur),
			cli.FormatAmount(r.Snapshot.Savings, cur),
			cli.FormatAmount(r.Snapshot.Debt, cur),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers:    []string{"When", "Category", "Score", "Income", "Savings", "Debt"},
		Rows:       rows,
		RightAlign: []bool{false, false, true, true, true, true},
	}))
	if len(records) > 1 {
		scores := make([]float64, len(records))
		for i, r := range records {
			scores[len(records)-1-i] = r.Score
		}
		fmt.Printf("  Score trend (oldest → newest): %s\n", components.Sparkline(scores, cli.ColorAccent))
	}
	fmt.Println()

	total := 0
	for _, n := range counts {
		total += n
	}
	catRows := make([][]string, 0, len(advisor.Categories))
	for _, c := range advisor.Categories {
		share := 0.0
		if total > 0 {
			share = float64(counts[c]) / float64(total)
		}
		catRows = append(catRows, []string{
			c.String(),
			cli.FormatNumber(int64(counts[c])),
			cli.FormatPercent(share),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:      "All time",
		Headers:    []string{"Category", "Count", "Share"},
		Rows:       catRows,
		RightAlign: []bool{false, true, true},
	}))
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	h, err := mustHistory()
	if err != nil {
		return err
	}
	defer closeHistory(h)

	if !flagYes {
		confirm := false
		err := huh.NewConfirm().
			Title("Delete all stored evaluations?").
			Description(settings.HistoryPath()).
			Affirmative("Delete").
			Negative("Keep").
			Value(&confirm).
			Run()
		if err != nil {
			return err
		}
		if !confirm {
			fmt.Println("  Kept your history.")
			return nil
		}
	}

	n, err := h.Clear(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("  Deleted %s evaluations.\n", cli.FormatNumber(n))
	return nil
}
