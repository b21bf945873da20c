package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a document's content (the active one when no id is given)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		app, err := openApp(ctx)
		if err != nil {
			fatal("Failed to open notepad", err)
		}
		defer app.Close()

		doc, ok := app.Store.Active()
		if len(args) > 0 {
			doc, ok = app.Store.Document(args[0])
		}
		if !ok {
			fatal("Show rejected", fmt.Errorf("document not found"))
		}

		fmt.Print(doc.Content)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
