// Package cmd implements the wealthyways CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wealthyways/wealthyways/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := settings

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [Model]")
	fmt.Printf("    Path: %s\n", cfg.Model.Path)
	fmt.Println()

	fmt.Println("  [History]")
	fmt.Printf("    Enabled:  %v\n", cfg.History.Enabled)
	fmt.Printf("    Database: %s\n", cfg.HistoryPath())
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme:    %s\n", cfg.Appearance.Theme)
	fmt.Printf("    Currency: %s\n", cfg.Appearance.Currency)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address: %s\n", cfg.Server.Addr)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level:    %s\n", cfg.Log.Level)
	fmt.Printf("    TUI file: %s\n", config.LogPath())
	fmt.Println()

	fmt.Println("  Environment overrides: " + config.EnvModel + ", " + config.EnvHistory + ", " +
		config.EnvHistoryDB + ", " + config.EnvTheme + ", " + config.EnvAddr + ", " + config.EnvLogLevel)
	fmt.Println("  Run `wealthyways setup` to reconfigure.")
	return nil
}
