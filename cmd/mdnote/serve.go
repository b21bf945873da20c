package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hikmetgulsesli/markdown-notepad/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the notepad HTTP API",
	Long: `Start the REST and WebSocket server for browser frontends.
Configuration comes from the environment (see NOTEPAD_* variables),
optionally seeded from a .env file in the working directory.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		logger := slog.Default()
		cfg := server.LoadConfig(logger)
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		app, err := openAppWith(ctx, cfg.Options())
		if err != nil {
			fatal("Failed to open notepad", err)
		}
		defer app.Close()

		srv := server.NewServer(app, logger)
		if err := srv.Run(ctx, cfg.Addr); err != nil {
			fatal("Server failed", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides NOTEPAD_ADDR)")
}
