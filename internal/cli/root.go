// Package cli implements orderctl, the operator command line for the order
// desk: product search, client lookup and creation, order submission from a
// draft file, and a live order feed.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/protektor-crm/orderdesk/internal/api"
	"github.com/protektor-crm/orderdesk/internal/config"
	"github.com/spf13/cobra"
)

var (
	apiBase string
	token   string
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "orderctl",
		Short:         "Operator CLI for the order desk",
		Long:          "orderctl drives the order desk backend from the terminal: search products, look up and create clients, submit order drafts, and follow the live order feed.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cfg := config.Load()
	cmd.PersistentFlags().StringVar(&apiBase, "api", cfg.APIBaseURL, "backend base URL")
	cmd.PersistentFlags().StringVar(&token, "token", os.Getenv("ORDERDESK_TOKEN"), "bearer token (defaults to $ORDERDESK_TOKEN)")

	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newTimeclockCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newClientCmd())
	cmd.AddCommand(newSubmitCmd())
	cmd.AddCommand(newWatchCmd())
	return cmd
}

func Execute() error {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+err.Error())
	}
	return err
}

func baseURL() string {
	return strings.TrimRight(apiBase, "/")
}

func endpoints() api.Endpoints {
	base := baseURL()
	return api.Endpoints{
		ProductSearch: base + "/orders/product-search/",
		ClientLookup:  base + "/orders/client-lookup/",
		AddClient:     base + "/clients/add/",
		AddOrder:      base + "/orders/add/",
		OrdersList:    base + "/orders/",
		Dashboard:     base + "/dashboard/",
	}
}

func newAPIClient() *api.Client {
	c := api.New(endpoints(), nil)
	if token != "" {
		c.SetToken(token)
	}
	return c
}
