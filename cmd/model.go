package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wealthyways/wealthyways/internal/cli"
)

var flagModelJSON bool

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Show details of the classifier model",
	Args:  cobra.NoArgs,
	RunE:  runModel,
}

func init() {
	modelCmd.Flags().BoolVar(&flagModelJSON, "json", false, "Print model info as JSON")
	rootCmd.AddCommand(modelCmd)
}

func runModel(_ *cobra.Command, _ []string) error {
	m, err := loadModel()
	if err != nil {
		return err
	}
	info := m.Info()

	if flagModelJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("CLASSIFIER MODEL"))
	fmt.Println()

	name := info.Name
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers:    []string{"Property", "Value"},
		RightAlign: []bool{false, false},
		Rows: [][]string{
			{"Name", name},
			{"Path", info.Path},
			{"---"},
			{"Features", strings.Join(info.Features, ", ")},
			{"Classes", strings.Join(info.Classes, ", ")},
			{"---"},
			{"Trees", cli.FormatNumber(int64(info.Trees))},
			{"Max depth", cli.FormatNumber(int64(info.MaxDepth))},
			{"Nodes", cli.FormatNumber(int64(info.Nodes))},
		},
	}))
	return nil
}
