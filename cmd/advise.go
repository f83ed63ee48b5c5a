package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/wealthyways/wealthyways/internal/advisor"
	"github.com/wealthyways/wealthyways/internal/cli"
	"github.com/wealthyways/wealthyways/internal/store"
)

var (
	flagIncome   string
	flagExpenses string
	flagSavings  string
	flagDebt     string
	flagJSON     bool
	flagTip      bool
)

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Evaluate one monthly snapshot and print Anni's advice",
	Example: "  wealthyways advise --income 50000 --expenses 30000 --savings 10000\n" +
		"  wealthyways advise --income '1,00,000' --savings 40000 --json",
	Args: cobra.NoArgs,
	RunE: runAdvise,
}

func init() {
	adviseCmd.Flags().StringVar(&flagIncome, "income", "", "Net monthly take-home income")
	adviseCmd.Flags().StringVar(&flagExpenses, "expenses", "", "Monthly expenses incl. rent, bills, food")
	adviseCmd.Flags().StringVar(&flagSavings, "savings", "", "Amount saved each month after expenses")
	adviseCmd.Flags().StringVar(&flagDebt, "debt", "", "Total debt: EMIs, credit card dues, loans")
	adviseCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the result as JSON")
	adviseCmd.Flags().BoolVar(&flagTip, "tip", false, "Include Anni's bonus tip")
	rootCmd.AddCommand(adviseCmd)
}

type adviseResult struct {
	advisor.Advice
	ID string `json:"id,omitempty"`
}

func runAdvise(cmd *cobra.Command, _ []string) error {
	snap, err := advisor.ParseSnapshot(flagIncome, flagExpenses, flagSavings, flagDebt)
	if err != nil {
		return err
	}

	model, err := loadModel()
	if err != nil {
		return err
	}

	adv, err := advisor.Evaluate(snap, model)
	if err != nil {
		return err
	}
	slog.Debug("evaluated snapshot", "category", adv.Category.String(), "score", adv.Score, "tier", string(adv.Tier))

	res := adviseResult{Advice: adv}
	res.ID = saveHistory(cmd.Context(), adv)

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("WEALTHYWAYS  Anni's Advice"))
	fmt.Println()
	fmt.Print(cli.RenderAdvice(adv, settings.Appearance.Currency, flagTip))
	fmt.Println()
	return nil
}

// saveHistory records adv and returns its ID, or "" when history is off or
// the write failed.
func saveHistory(ctx context.Context, adv advisor.Advice) string {
	h := openHistory()
	if h == nil {
		return ""
	}
	defer closeHistory(h)

	if ctx == nil {
		ctx = context.Background()
	}
	rec, err := h.Save(ctx, store.NewRecord(adv, settings.Model.Path))
	if err != nil {
		slog.Warn("saving history failed", "err", err)
		return ""
	}
	return rec.ID
}
