package cli

import (
	"fmt"

	"github.com/protektor-crm/orderdesk/internal/api"
	"github.com/protektor-crm/orderdesk/internal/season"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var (
		nameQuery  string
		size       string
		seasonTag  string
		city       string
		priceLevel string
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search products",
		Long:  "Search products by query and size. --name scopes the search to the name column (size is then ignored, as the search endpoint requires). Season filtering happens client-side, matching the end tag in the product name first.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := api.SearchQuery{
				Size:       size,
				Season:     seasonTag,
				City:       city,
				PriceLevel: priceLevel,
			}
			if len(args) > 0 {
				q.Query = args[0]
			}
			if nameQuery != "" {
				q.Query = nameQuery
				q.Size = ""
				q.SearchField = "name"
			}

			products, err := newAPIClient().SearchProducts(cmd.Context(), q)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			shown := 0
			for _, p := range products {
				if seasonTag != "" && !season.Matches(season.Tagged{
					Name:       p.Name,
					Code:       p.Code,
					Season:     p.Season,
					SeasonTags: p.SeasonTags,
				}, seasonTag) {
					continue
				}
				shown++
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", headerStyle.Render(p.Name), dimStyle.Render(p.Code))
				fmt.Fprintf(cmd.OutOrStdout(), "  id %s  price %s  city %s\n", p.ID, p.Price.String(), p.BranchCity)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render(fmt.Sprintf("%d product(s)", shown)))
			return nil
		},
	}

	cmd.Flags().StringVar(&nameQuery, "name", "", "name-scoped query")
	cmd.Flags().StringVar(&size, "size", "", "tire size")
	cmd.Flags().StringVar(&seasonTag, "season", "", "season tag filter")
	cmd.Flags().StringVar(&city, "city", "", "branch city")
	cmd.Flags().StringVar(&priceLevel, "price-level", "retail", "price level")
	return cmd
}
