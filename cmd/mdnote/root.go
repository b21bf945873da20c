package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	notepad "github.com/hikmetgulsesli/markdown-notepad"
)

var (
	verbose    bool
	dataDir    string
	adapter    string
	configPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mdnote",
	Short: "A debounced, snapshot-persisted markdown notepad",
	Long: `mdnote manages a set of markdown documents as one atomic snapshot.
Edits apply in memory immediately; a debounced writer persists the full
snapshot, so bursts of changes collapse into a single storage write.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Storage directory (defaults to the user config dir)")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "", "Storage adapter: fs, sqlite, postgres or memory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to mdnote.yaml")
}

// openApp builds the notepad from the config file and flags. Flags win over
// the config file because their options are applied last.
func openApp(ctx context.Context) (*notepad.App, error) {
	return openAppWith(ctx, nil)
}

// openAppWith applies extra options between the config file and the flags.
func openAppWith(ctx context.Context, extra []notepad.Option) (*notepad.App, error) {
	path := configPath
	if path == "" {
		path = filepath.Join(notepad.DefaultDataDir(), notepad.ConfigFileName)
	}
	cfg, err := notepad.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	opts := cfg.Options()
	opts = append(opts, extra...)
	opts = append(opts, notepad.WithLogger(slog.Default()))
	if dataDir != "" {
		opts = append(opts, notepad.WithDataDir(dataDir))
	}
	if adapter != "" {
		opts = append(opts, notepad.WithAdapter(adapter))
	}

	return notepad.New(ctx, opts...)
}

// shutdown flushes pending writes and releases the adapter. CLI commands are
// one-shot processes, so every mutation must be durable before exit.
func shutdown(ctx context.Context, app *notepad.App) {
	if err := app.Shutdown(ctx); err != nil {
		fatal("Failed to persist changes", err)
	}
}
