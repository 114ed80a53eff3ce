package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"yelpcamp/internal/services"
	"yelpcamp/internal/utils"
)

var seedCount int

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace all campgrounds with generated sample data",
	Long: `Replace all campgrounds and reviews with generated sample data.

The "seeder" and "camper" users are created when missing, with the password
from SEED_PASSWORD.

Examples:
  yelpcamp seed              # 200 campgrounds
  yelpcamp seed --count 50   # 50 campgrounds`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return err
		}
		seeder := services.NewSeeder(st, services.NewCredentials(bcrypt.DefaultCost), nil)
		res, err := seeder.Seed(ctx, seedCount, utils.GetEnv("SEED_PASSWORD", "Camper@2024"))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d campgrounds and %d reviews\n", res.DeletedListings, res.DeletedReviews)
		fmt.Fprintf(cmd.OutOrStdout(), "Created %d campgrounds and %d reviews\n", res.Listings, res.Reviews)
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedCount, "count", 200, "Number of campgrounds to create")
	rootCmd.AddCommand(seedCmd)
}
