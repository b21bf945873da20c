package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all documents",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		app, err := openApp(ctx)
		if err != nil {
			fatal("Failed to open notepad", err)
		}
		defer app.Close()

		docs := app.Store.Documents()
		activeID := app.Store.ActiveID()

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(docs); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, doc := range docs {
			marker := " "
			if doc.ID == activeID {
				marker = "*"
			}
			fmt.Printf("%s %s  %s\n", marker, doc.ID, doc.Name)
		}

		if msg, ok := app.Store.LoadError(); ok {
			fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
}
