package cli

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

func newTimeclockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeclock",
		Short: "Start or stop a work session",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Open a work session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return timeclockPost(cmd, "/timeclock/start")
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "stop",
		Short: "Close the open work session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return timeclockPost(cmd, "/timeclock/stop")
		},
	})
	return cmd
}

func timeclockPost(cmd *cobra.Command, path string) error {
	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodPost, baseURL()+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	var resp struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		if resp.Message != "" {
			return fmt.Errorf("%s", resp.Message)
		}
		return fmt.Errorf("%s", resp.Error)
	}

	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("ok"))
	return nil
}
