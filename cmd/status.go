package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wealthyways/wealthyways/internal/cli"
	"github.com/wealthyways/wealthyways/internal/server"
)

var flagStatusAddr string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Probe a running `wealthyways serve` API",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&flagStatusAddr, "addr", "", "API address (default from config)")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	addr := settings.Server.Addr
	if flagStatusAddr != "" {
		addr = flagStatusAddr
	}
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}

	fmt.Printf("  Address: %s\n", addr)

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(addr + "/v1/status") //nolint:noctx // short status probe
	if err != nil {
		fmt.Printf("  API status: unreachable (%v)\n", err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("  API status: HTTP %d\n", resp.StatusCode)
		return nil
	}

	var st server.Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		fmt.Printf("  API status: malformed response (%v)\n", err)
		return nil
	}

	fmt.Printf("  Up since: %s (%s)\n", st.StartedAt.Local().Format(time.RFC3339), cli.FormatAge(st.StartedAt, time.Now()))
	fmt.Printf("  Model: %s (%d trees, %d classes)\n", st.Model.Path, st.Model.Trees, len(st.Model.Classes))
	fmt.Printf("  History: %v\n", st.History)
	fmt.Printf("  Evaluations: %s\n", cli.FormatNumber(st.Evaluations))
	fmt.Printf("  Rejected inputs: %s\n", cli.FormatNumber(st.Rejected))
	fmt.Printf("  Stream subscribers: %d\n", st.SubscriberCount)
	if st.LastError != "" {
		fmt.Printf("  Last error: %s\n", st.LastError)
	}
	return nil
}
