package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a document",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		id, name := args[0], args[1]

		ctx := context.Background()
		app, err := openApp(ctx)
		if err != nil {
			fatal("Failed to open notepad", err)
		}

		if !app.Store.RenameDocument(id, name) {
			app.Close()
			fatal("Rename rejected", fmt.Errorf("unknown id or blank name"))
		}
		shutdown(ctx, app)

		fmt.Printf("Renamed %s to '%s'\n", id, name)
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
}
