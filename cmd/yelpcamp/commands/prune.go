package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"yelpcamp/internal/services"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete reviews whose campground no longer exists",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := services.NewListingService(st, nil, nil).PruneOrphans(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d orphan reviews\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pruneCmd)
}
