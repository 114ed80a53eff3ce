package commands

import (
	"github.com/spf13/cobra"

	"yelpcamp/internal/app"
	"yelpcamp/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	Long: `Run the web server. The schema is applied on start and the server stops
gracefully on SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return app.Run(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
