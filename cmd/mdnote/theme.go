package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hikmetgulsesli/markdown-notepad/pkg/theme"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Inspect or change the theme preference",
}

var themeGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the resolved theme",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		app, err := openApp(ctx)
		if err != nil {
			fatal("Failed to open notepad", err)
		}
		defer app.Close()

		fmt.Println(app.Themes.Current())
	},
}

var themeSetCmd = &cobra.Command{
	Use:   "set <light|dark>",
	Short: "Store an explicit theme preference",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		app, err := openApp(ctx)
		if err != nil {
			fatal("Failed to open notepad", err)
		}
		defer app.Close()

		if err := app.Themes.Set(ctx, theme.Theme(args[0])); err != nil {
			fatal("Failed to set theme", err)
		}
		fmt.Println(app.Themes.Current())
	},
}

var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Flip between light and dark",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		app, err := openApp(ctx)
		if err != nil {
			fatal("Failed to open notepad", err)
		}
		defer app.Close()

		next, err := app.Themes.Toggle(ctx)
		if err != nil {
			fatal("Failed to toggle theme", err)
		}
		fmt.Println(next)
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
	themeCmd.AddCommand(themeGetCmd)
	themeCmd.AddCommand(themeSetCmd)
	themeCmd.AddCommand(themeToggleCmd)
}
