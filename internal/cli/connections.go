package cli

import (
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"
)

func newConnectionsCmd() *cobra.Command {
	connectionsCmd := &cobra.Command{
		Use:     "connections",
		Aliases: []string{"conn"},
		Short:   "Manage friend connections",
	}

	var inviteQRFile string
	inviteCmd := &cobra.Command{
		Use:   "invite <name>",
		Short: "Generate an invite link for a new connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Invite
			err := client.Post("/api/v1/connections/invite", map[string]string{"friend_name": args[0]}, &result)
			if err != nil {
				output.PrintError(err)
				return err
			}
			output.Print(result)
			if inviteQRFile != "" {
				png, err := client.GetRaw("/api/v1/connections/" + result.Connection.ID + "/qr")
				if err != nil {
					output.PrintError(err)
					return err
				}
				if err := os.WriteFile(inviteQRFile, png, 0o644); err != nil {
					output.PrintError(err)
					return err
				}
				output.PrintMessage(fmt.Sprintf("QR code written to %s", inviteQRFile))
			}
			return nil
		},
	}
	inviteCmd.Flags().StringVar(&inviteQRFile, "qr", "", "Write a QR code PNG of the invite link to this file")

	var listStatus string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List connections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/connections"
			if listStatus != "" {
				path += "?status=" + url.QueryEscape(listStatus)
			}
			var result ConnectionList
			if err := client.Get(path, &result); err != nil {
				output.PrintError(err)
				return err
			}
			output.Print(result)
			return nil
		},
	}
	listCmd.Flags().StringVar(&listStatus, "status", "", "Filter by status: pending, active")

	showCmd := &cobra.Command{
		Use:   "show <connection-id>",
		Short: "Show a connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Connection
			if err := client.Get("/api/v1/connections/"+args[0], &result); err != nil {
				output.PrintError(err)
				return err
			}
			output.Print(result)
			return nil
		},
	}

	acceptCmd := &cobra.Command{
		Use:   "accept <connection-id>",
		Short: "Mark a pending connection as active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Connection
			err := client.Post("/api/v1/connections/"+args[0]+"/accept", nil, &result)
			if err != nil {
				output.PrintError(err)
				return err
			}
			output.Print(result)
			return nil
		},
	}

	var registerURL string
	registerCmd := &cobra.Command{
		Use:   "register <name>",
		Short: "Register an incoming connection from an invite",
		Long: `Register an incoming connection from an invite.

The connection id is taken from --id, or parsed from an invite
link passed via --url.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetString("id")
			if id == "" && registerURL == "" {
				err := fmt.Errorf("one of --id or --url is required")
				output.PrintError(err)
				return err
			}
			var result Connection
			err := client.Post("/api/v1/connections/incoming", map[string]string{
				"id":          id,
				"invite_url":  registerURL,
				"friend_name": args[0],
			}, &result)
			if err != nil {
				output.PrintError(err)
				return err
			}
			output.Print(result)
			return nil
		},
	}
	registerCmd.Flags().String("id", "", "Connection id from the invite")
	registerCmd.Flags().StringVar(&registerURL, "url", "", "Invite link to parse the connection id from")

	deleteCmd := &cobra.Command{
		Use:   "delete <connection-id>",
		Short: "Delete a connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/connections/" + args[0]); err != nil {
				output.PrintError(err)
				return err
			}
			output.PrintMessage("Connection deleted")
			return nil
		},
	}

	connectionsCmd.AddCommand(inviteCmd)
	connectionsCmd.AddCommand(listCmd)
	connectionsCmd.AddCommand(showCmd)
	connectionsCmd.AddCommand(acceptCmd)
	connectionsCmd.AddCommand(registerCmd)
	connectionsCmd.AddCommand(deleteCmd)

	return connectionsCmd
}
