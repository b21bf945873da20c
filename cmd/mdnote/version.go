package main

import (
	"fmt"

	"github.com/spf13/cobra"

	notepad "github.com/hikmetgulsesli/markdown-notepad"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of mdnote",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mdnote version %s\n", notepad.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
