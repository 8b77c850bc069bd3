package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow the live order feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			wsBase := baseURL()
			wsBase = strings.Replace(wsBase, "https://", "wss://", 1)
			wsBase = strings.Replace(wsBase, "http://", "ws://", 1)

			u := wsBase + "/ws/orders?token=" + url.QueryEscape(token)
			conn, _, err := websocket.DefaultDialer.DialContext(cmd.Context(), u, nil)
			if err != nil {
				return fmt.Errorf("connect to order feed: %w", err)
			}
			defer conn.Close()

			fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("watching order feed, ctrl-c to stop"))
			for {
				var event struct {
					Type    string `json:"type"`
					Payload struct {
						OrderID     string `json:"order_id"`
						OrderNumber string `json:"order_number"`
						Status      string `json:"status"`
						Total       string `json:"total"`
					} `json:"payload"`
				}
				if err := conn.ReadJSON(&event); err != nil {
					return fmt.Errorf("feed closed: %w", err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s  total %s\n",
					headerStyle.Render(event.Type),
					event.Payload.OrderNumber,
					renderStatus(event.Payload.Status),
					event.Payload.Total)
			}
		},
	}
}
