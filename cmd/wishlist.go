package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"dealscope/pkg/alerts"
)

// wishlistCmd represents the wishlist command
var wishlistCmd = &cobra.Command{
	Use:   "wishlist",
	Short: "Manage your wishlist",
}

var wishlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the wishlist",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		items := store.Wishlist()
		if len(items) == 0 {
			fmt.Println("Your wishlist is empty.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "PRODUCT\tNAME\tPRICE\tRETAILER\tADDED\t")
		for _, it := range items {
			fmt.Fprintf(w, "%s\t%s\t%.0f\t%s\t%s\t\n",
				it.ID, it.Name, it.Price, it.Retailer, it.AddedAt.Format(time.RFC3339))
		}
		return w.Flush()
	},
}

var wishlistAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a product from the feed to the wishlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newFeedClient(cmd)
		if err != nil {
			return err
		}
		product, err := resolveProduct(cmd.Context(), client, args[0])
		if err != nil {
			return err
		}

		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		err = store.AddWish(alerts.WishlistItem{
			ID:    product.ID,
			Name:  product.Name,
			Price: product.CurrentPrice.Value(),
			Image: product.ImageURL,
			URL:   product.URL,
		})
		if err != nil {
			return err
		}
		fmt.Printf("%s added to your wishlist\n", product.Name)
		return nil
	},
}

var wishlistRemoveCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Remove a product from the wishlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()
		return store.RemoveWish(args[0])
	},
}

func init() {
	rootCmd.AddCommand(wishlistCmd)
	wishlistCmd.AddCommand(wishlistListCmd)
	wishlistCmd.AddCommand(wishlistAddCmd)
	wishlistCmd.AddCommand(wishlistRemoveCmd)
}
