package cmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dealscope/pkg/alerts"
)

// alertsCmd represents the alerts command
var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Manage price alerts",
}

var alertsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all stored price alerts",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		all := store.All()
		if len(all) == 0 {
			fmt.Println("No price alerts set.")
			return nil
		}

		ids := make([]string, 0, len(all))
		for id := range all {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "PRODUCT\tNAME\tCURRENT\tALERT AT\tEMAIL\tCREATED\t")
		for _, id := range ids {
			a := all[id]
			fmt.Fprintf(w, "%s\t%s\t%.0f\t%.0f\t%s\t%s\t\n",
				a.ProductID, a.ProductName, a.CurrentPrice, a.AlertPrice,
				a.Email, a.DateCreated.Format(time.RFC3339))
		}
		return w.Flush()
	},
}

var alertsSetCmd = &cobra.Command{
	Use:   "set <product-id> <alert-price>",
	Short: "Create or replace a price alert for a product on the feed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		alertPrice, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid alert price %q", args[1])
		}

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

		email, _ := cmd.Flags().GetString("email")
		if email == "" {
			email = viper.GetString("alerts.email")
		}

		err = store.Create(alerts.Alert{
			ProductID:    product.ID,
			ProductName:  product.Name,
			CurrentPrice: product.CurrentPrice.Value(),
			AlertPrice:   alertPrice,
			Email:        email,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Alert set: %s below %.0f\n", product.Name, alertPrice)
		return nil
	},
}

var alertsRemoveCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Delete the price alert for a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()
		return store.Remove(args[0])
	},
}

var alertsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all price alerts",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()
		return store.Clear()
	},
}

var alertsSuggestCmd = &cobra.Command{
	Use:   "suggest <current-price>",
	Short: "Print the suggested alert threshold for a price",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		current, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid price %q", args[0])
		}
		fmt.Printf("%.0f\n", alerts.SuggestedPrice(current))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(alertsCmd)
	alertsCmd.AddCommand(alertsListCmd)
	alertsCmd.AddCommand(alertsSetCmd)
	alertsCmd.AddCommand(alertsRemoveCmd)
	alertsCmd.AddCommand(alertsClearCmd)
	alertsCmd.AddCommand(alertsSuggestCmd)
	alertsSetCmd.Flags().String("email", "", "Email to notify (defaults to alerts.email from config)")
}
