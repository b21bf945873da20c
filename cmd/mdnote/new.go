package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a document and make it active",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}

		ctx := context.Background()
		app, err := openApp(ctx)
		if err != nil {
			fatal("Failed to open notepad", err)
		}

		doc := app.Store.CreateDocument(name)
		shutdown(ctx, app)

		fmt.Printf("Created '%s' (%s)\n", doc.Name, doc.ID)
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
}
