package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dealscope/internal/utils"
	"dealscope/pkg/alerts"
	"dealscope/pkg/deals"
	"dealscope/pkg/feed"
)

// storePath resolves the store location: --store flag, then config, then
// the default under ~/.config/dealscope.
func storePath(cmd *cobra.Command) (string, error) {
	path, _ := cmd.Flags().GetString("store")
	if path == "" {
		path = viper.GetString("store.path")
	}
	return utils.GetAbsStorePath(path)
}

func openStore(cmd *cobra.Command) (*alerts.Store, error) {
	path, err := storePath(cmd)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return alerts.Open(path)
}

func newFeedClient(cmd *cobra.Command) (*feed.Client, error) {
	proxy, _ := cmd.Flags().GetString("proxy")
	return feed.New(feed.Config{
		URL:      viper.GetString("feed.url"),
		Timeout:  time.Duration(viper.GetInt("feed.timeout_seconds")) * time.Second,
		RetryMax: viper.GetInt("feed.retry_max"),
		Proxy:    proxy,
	})
}

// resolveProduct fetches the feed and looks a product up by id.
func resolveProduct(ctx context.Context, client *feed.Client, id string) (deals.Product, error) {
	raws, err := client.Fetch(ctx)
	if err != nil {
		return deals.Product{}, err
	}
	for _, p := range deals.NormalizeAll(raws) {
		if p.ID != "" && p.ID == id {
			return p, nil
		}
	}
	return deals.Product{}, fmt.Errorf("product %q not found on the deals feed", id)
}
