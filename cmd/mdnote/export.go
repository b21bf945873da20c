package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hikmetgulsesli/markdown-notepad/pkg/export"
)

var (
	exportOut   string
	exportMatch string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export documents as standalone .md files",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		app, err := openApp(ctx)
		if err != nil {
			fatal("Failed to open notepad", err)
		}
		defer app.Close()

		e := &export.Exporter{Dir: exportOut}
		paths, err := e.WriteMatching(app.Store.Documents(), exportMatch)
		if err != nil {
			fatal("Export failed", err)
		}

		for _, path := range paths {
			fmt.Println(path)
		}
		fmt.Printf("Exported %d document(s)\n", len(paths))
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "export", "Output directory")
	exportCmd.Flags().StringVar(&exportMatch, "match", "*", "Glob pattern matched against document names (doublestar)")
}
