package cli

import (
	"github.com/spf13/cobra"

	"github.com/saulo-duarte/streaker/internal/config"
	"github.com/saulo-duarte/streaker/internal/container"
)

func init() {
	rootCmd.AddCommand(migrateCmd, seedCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := connectOnly(cmd.Context()); err != nil {
			return err
		}
		return container.Migrate(config.DB)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Upsert the goal template and badge catalogs",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := connectOnly(cmd.Context()); err != nil {
			return err
		}
		return container.Seed(cmd.Context(), config.DB)
	},
}
