package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdlabs/pdgame/internal/ws"
)

func newEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Stream connection events from the server",
		Long: `Stream connection events from the server over websocket.

Prints each event as it arrives until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			wsClient, err := ws.Dial(ctx, client.WSURL())
			if err != nil {
				output.PrintError(err)
				return err
			}
			defer func() { _ = wsClient.Close() }()

			if cfg.Verbose {
				output.PrintMessage(fmt.Sprintf("Connected to %s", client.WSURL()))
			}

			for {
				select {
				case <-ctx.Done():
					return nil
				case env, ok := <-wsClient.Events():
					if !ok {
						return fmt.Errorf("connection closed")
					}
					printEvent(env)
				}
			}
		},
	}
}

func printEvent(env ws.Envelope) {
	if cfg.Output == "json" {
		data, _ := json.Marshal(env)
		fmt.Println(string(data))
		return
	}

	switch env.Type {
	case ws.TypeConnectionCreated, ws.TypeStatusUpdated:
		var conn Connection
		if err := json.Unmarshal(env.Data, &conn); err == nil {
			fmt.Printf("[%s] %s (%s) - %s\n", env.Type, conn.Name, conn.ID, conn.Status)
			return
		}
	case ws.TypeConnectionsList:
		var list ConnectionList
		if err := json.Unmarshal(env.Data, &list); err == nil {
			fmt.Printf("[%s] %d connections\n", env.Type, len(list.Connections))
			return
		}
	}
	fmt.Fprintf(os.Stdout, "[%s] %s\n", env.Type, string(env.Data))
}
