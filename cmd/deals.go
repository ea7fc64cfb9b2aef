package cmd

import (
	"github.com/spf13/cobra"

	"dealscope/internal/controller"
	"dealscope/internal/render"
	"dealscope/pkg/deals"
)

// dealsCmd implements: dealscope deals
//
// Fetches the feed, normalizes the records, sorts and renders one page.
// Page and sort changes operate on the already-fetched set; re-running the
// command is the manual retry.
var dealsCmd = &cobra.Command{
	Use:   "deals",
	Short: "Browse the current smartphone deals",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		sortBy, _ := cmd.Flags().GetString("sort")
		pageSize, _ := cmd.Flags().GetInt("page-size")
		wishlistID, _ := cmd.Flags().GetString("add-wishlist")
		alertID, _ := cmd.Flags().GetString("toggle-alert")
		compareID, _ := cmd.Flags().GetString("compare")

		client, err := newFeedClient(cmd)
		if err != nil {
			return err
		}

		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		term := render.New()
		ctrl := controller.New(controller.Deps{
			Fetcher:   client,
			Renderer:  term,
			Notifier:  term,
			Navigator: term,
			Prompter:  term,
			Store:     store,
			SortBy:    sortBy,
			PageSize:  pageSize,
		})

		if err := ctrl.Refresh(cmd.Context()); err != nil {
			return err
		}
		if page > 1 {
			ctrl.ChangePage(page)
		}

		if wishlistID != "" {
			ctrl.OnWishlistClick(wishlistID)
		}
		if alertID != "" {
			ctrl.OnAlertBellClick(alertID)
		}
		if compareID != "" {
			ctrl.OnCompareClick(compareID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dealsCmd)
	dealsCmd.Flags().IntP("page", "p", 1, "Page to show")
	dealsCmd.Flags().StringP("sort", "s", deals.SortRelevance,
		"Sort criterion: price-asc, price-desc, brand-asc, brand-desc, relevance")
	dealsCmd.Flags().Int("page-size", deals.DefaultPageSize, "Products per page")
	dealsCmd.Flags().String("add-wishlist", "", "Add the product with this id to the wishlist after rendering")
	dealsCmd.Flags().String("toggle-alert", "", "Toggle the price alert for the product with this id")
	dealsCmd.Flags().String("compare", "", "Open the comparison view for the product with this id")
}
