package cli

import (
	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	playerCmd := &cobra.Command{
		Use:   "player",
		Short: "Manage the local player profile",
	}

	registerCmd := &cobra.Command{
		Use:   "register <name>",
		Short: "Register the local player, replacing any existing profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result RegisterResult
			err := client.Post("/api/v1/player", map[string]string{"name": args[0]}, &result)
			if err != nil {
				output.PrintError(err)
				return err
			}
			output.Print(result)
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the local player profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player
			if err := client.Get("/api/v1/player", &result); err != nil {
				output.PrintError(err)
				return err
			}
			output.Print(result)
			return nil
		},
	}

	renameCmd := &cobra.Command{
		Use:   "rename <name>",
		Short: "Change the player display name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player
			err := client.Patch("/api/v1/player/name", map[string]string{"name": args[0]}, &result)
			if err != nil {
				output.PrintError(err)
				return err
			}
			output.Print(result)
			return nil
		},
	}

	openCmd := &cobra.Command{
		Use:   "open",
		Short: "Increment the open counter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player
			if err := client.Post("/api/v1/player/open", nil, &result); err != nil {
				output.PrintError(err)
				return err
			}
			output.Print(result)
			return nil
		},
	}

	playerCmd.AddCommand(registerCmd)
	playerCmd.AddCommand(showCmd)
	playerCmd.AddCommand(renameCmd)
	playerCmd.AddCommand(openCmd)

	return playerCmd
}
