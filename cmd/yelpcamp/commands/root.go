package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"yelpcamp/internal/app"
	"yelpcamp/internal/config"
	"yelpcamp/internal/store"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "yelpcamp",
	Short: "YelpCamp - campground listings and reviews",
	Long: `YelpCamp serves a campground catalogue where signed-in users post
campgrounds with photos and a mapped location, and review each other's sites.

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openStore loads the configuration and connects to the database.
func openStore(ctx context.Context) (*config.Config, store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	st, err := app.OpenStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, st, nil
}
