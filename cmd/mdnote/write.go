package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	writeContent string
	writeFile    string
)

// writeCmd sets the content of a document. The document becomes the active
// selection first, since edits always target the active document.
var writeCmd = &cobra.Command{
	Use:   "write <id>",
	Short: "Replace a document's content",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]

		if writeContent == "" && writeFile == "" {
			fmt.Println("Error: --content or --file is required")
			cmd.Usage()
			os.Exit(1)
		}

		content := writeContent
		if writeFile != "" {
			data, err := os.ReadFile(writeFile)
			if err != nil {
				fatal("Failed to read input file", err)
			}
			content = string(data)
		}

		ctx := context.Background()
		app, err := openApp(ctx)
		if err != nil {
			fatal("Failed to open notepad", err)
		}

		if !app.Store.SetActive(id) {
			app.Close()
			fatal("Write rejected", fmt.Errorf("unknown id %q", id))
		}
		app.Store.UpdateContent(content)
		shutdown(ctx, app)

		fmt.Printf("Wrote %d bytes to %s\n", len(content), id)
	},
}

func init() {
	rootCmd.AddCommand(writeCmd)
	writeCmd.Flags().StringVar(&writeContent, "content", "", "Document content")
	writeCmd.Flags().StringVar(&writeFile, "file", "", "Read content from a file")
}
