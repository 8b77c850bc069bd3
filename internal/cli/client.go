package cli

import (
	"errors"
	"fmt"

	"github.com/protektor-crm/orderdesk/internal/api"
	"github.com/spf13/cobra"
)

func newClientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Look up or create clients",
	}
	cmd.AddCommand(newClientLookupCmd())
	cmd.AddCommand(newClientAddCmd())
	return cmd
}

func newClientLookupCmd() *cobra.Command {
	var id, phone string

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Find a client by id or phone",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newAPIClient()

			var rec *api.ClientRecord
			var err error
			switch {
			case id != "":
				rec, err = c.LookupClientByID(cmd.Context(), id)
			case phone != "":
				rec, err = c.LookupClientByPhone(cmd.Context(), phone)
			default:
				return errors.New("either --id or --phone is required")
			}
			if err != nil {
				return err
			}
			if rec == nil {
				fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("not found"))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), headerStyle.Render(rec.Name))
			fmt.Fprintf(cmd.OutOrStdout(), "  id %s\n  phone %s\n  city %s\n", rec.ID, rec.Phone, rec.City)
			if rec.Address != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "  address %s\n", rec.Address)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "client id")
	cmd.Flags().StringVar(&phone, "phone", "", "client phone (any format)")
	return cmd
}

func newClientAddCmd() *cobra.Command {
	var nc api.NewClient

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a client",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := newAPIClient().CreateClient(cmd.Context(), nc)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("created ")+id)
			return nil
		},
	}

	cmd.Flags().StringVar(&nc.ClientType, "type", "individual", "client type (individual or legal_entity)")
	cmd.Flags().StringVar(&nc.Name, "name", "", "client name")
	cmd.Flags().StringVar(&nc.Phone, "phone", "", "client phone")
	cmd.Flags().StringVar(&nc.City, "city", "", "client city")
	cmd.Flags().StringVar(&nc.Address, "address", "", "client address")
	cmd.Flags().StringVar(&nc.AddressComment, "address-comment", "", "address comment")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("phone")
	return cmd
}
