package cli

import (
	"github.com/spf13/cobra"
)

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <connection-id> <my-move> <their-move>",
		Short: "Record a round against an active connection",
		Long: `Record a round against an active connection.

Moves are "cooperate" or "defect". Both moves are recorded together
and scored with the standard payoff matrix.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Round
			err := client.Post("/api/v1/game/rounds", map[string]string{
				"connection_id": args[0],
				"my_move":       args[1],
				"their_move":    args[2],
			}, &result)
			if err != nil {
				output.PrintError(err)
				return err
			}
			output.Print(result)
			return nil
		},
	}
}

func newRoundsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rounds",
		Short: "List recorded rounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result RoundList
			if err := client.Get("/api/v1/game/rounds", &result); err != nil {
				output.PrintError(err)
				return err
			}
			output.Print(result)
			return nil
		},
	}
}
