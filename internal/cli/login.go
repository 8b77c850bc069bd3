package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var login, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and print a bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := json.Marshal(map[string]string{"login": login, "password": password})
			if err != nil {
				return err
			}

			res, err := http.Post(baseURL()+"/auth/login", "application/json", bytes.NewReader(body))
			if err != nil {
				return err
			}
			defer res.Body.Close()

			var resp struct {
				AccessToken string `json:"access_token"`
				Error       string `json:"error"`
			}
			if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
				return fmt.Errorf("decode login response: %w", err)
			}
			if res.StatusCode != http.StatusOK {
				return fmt.Errorf("login failed: %s", resp.Error)
			}

			fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("export ORDERDESK_TOKEN=")+resp.AccessToken)
			return nil
		},
	}

	cmd.Flags().StringVar(&login, "login", "operator", "operator login")
	cmd.Flags().StringVar(&password, "password", "", "operator password")
	cmd.MarkFlagRequired("password")
	return cmd
}
