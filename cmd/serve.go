package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wealthyways/wealthyways/internal/server"
)

var (
	flagServeAddr         string
	flagServeEventsBuffer int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the advisor as a local JSON API with Prometheus metrics",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config)")
	serveCmd.Flags().IntVar(&flagServeEventsBuffer, "events-buffer", 200, "Max in-memory events retained")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	// The model must load before the listener starts.
	model, err := loadModel()
	if err != nil {
		return err
	}

	history := openHistory()
	defer closeHistory(history)

	addr := settings.Server.Addr
	if flagServeAddr != "" {
		addr = flagServeAddr
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc := server.New(server.Config{
		Addr:         addr,
		Model:        model.Info(),
		EventsBuffer: flagServeEventsBuffer,
	}, model, history)
	return svc.Run(ctx)
}
