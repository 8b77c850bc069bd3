package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/protektor-crm/orderdesk/internal/api"
	"github.com/spf13/cobra"
)

func newSubmitCmd() *cobra.Command {
	var editOrderID string

	cmd := &cobra.Command{
		Use:   "submit <draft.json>",
		Short: "Submit an order draft file",
		Long:  "Submit reads an order payload from a JSON file and posts it. With --edit the payload replaces an existing order instead of creating one.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var payload api.OrderPayload
			if err := json.Unmarshal(raw, &payload); err != nil {
				return fmt.Errorf("parse draft: %w", err)
			}

			c := newAPIClient()
			endpoint := c.Endpoints().AddOrder
			if editOrderID != "" {
				endpoint = baseURL() + "/orders/" + editOrderID + "/edit/"
			}

			result, err := c.SubmitOrder(cmd.Context(), endpoint, payload)
			if err != nil {
				var sessErr *api.SessionError
				if errors.As(err, &sessErr) {
					fmt.Fprintln(cmd.OutOrStdout(), errorStyle.Render("no work session: ")+sessErr.Error())
					fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("run: orderctl timeclock start"))
					return nil
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s order %s (%s)\n",
				successStyle.Render("submitted"), result.OrderNumber, result.OrderID)
			return nil
		},
	}

	cmd.Flags().StringVar(&editOrderID, "edit", "", "edit an existing order instead of creating one")
	return cmd
}
