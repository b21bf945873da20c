package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a document",
	Long: `Delete a document by id. Deleting the last document replaces it with
a fresh empty one; the notepad never holds zero documents.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]

		ctx := context.Background()
		app, err := openApp(ctx)
		if err != nil {
			fatal("Failed to open notepad", err)
		}

		if !app.Store.DeleteDocument(id) {
			app.Close()
			fatal("Delete rejected", fmt.Errorf("unknown id %q", id))
		}
		shutdown(ctx, app)

		fmt.Printf("Deleted %s\n", id)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
