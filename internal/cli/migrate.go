package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long:  "Apply every pending schema migration to the configured database and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		// initServices opens the database, which migrates it
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		fmt.Fprintf(cmd.OutOrStdout(), "Database is up to date (%s)\n", services.DB.Driver())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
