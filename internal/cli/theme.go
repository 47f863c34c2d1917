package cli

import (
	"github.com/spf13/cobra"
)

func newThemeCmd() *cobra.Command {
	themeCmd := &cobra.Command{
		Use:   "theme",
		Short: "Manage the theme preference",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ThemeResult
			if err := client.Get("/api/v1/theme", &result); err != nil {
				output.PrintError(err)
				return err
			}
			output.Print(result)
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <light|dark>",
		Short: "Set the theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ThemeResult
			err := client.Put("/api/v1/theme", map[string]string{"theme": args[0]}, &result)
			if err != nil {
				output.PrintError(err)
				return err
			}
			output.Print(result)
			return nil
		},
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle",
		Short: "Toggle between light and dark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ThemeResult
			if err := client.Post("/api/v1/theme/toggle", nil, &result); err != nil {
				output.PrintError(err)
				return err
			}
			output.Print(result)
			return nil
		},
	}

	themeCmd.AddCommand(showCmd)
	themeCmd.AddCommand(setCmd)
	themeCmd.AddCommand(toggleCmd)

	return themeCmd
}
