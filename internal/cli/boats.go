package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/martijn/boatapi/internal/core/domain"
	"github.com/spf13/cobra"
)

var boatsCmd = &cobra.Command{
	Use:   "boats",
	Short: "Manage boats",
	Long:  "List and add boats directly against the configured database",
}

var boatsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all boats",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		boats, err := services.BoatService.ListBoats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list boats: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(boats) == 0 {
			fmt.Fprintln(out, "No boats found")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
		for _, boat := range boats {
			fmt.Fprintf(w, "%d\t%s\t%s\n", boat.ID, boat.Name, boat.Description)
		}
		return w.Flush()
	},
}

var boatsAddCmd = &cobra.Command{
	Use:   "add <name> [description]",
	Short: "Add a new boat",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		description := ""
		if len(args) == 2 {
			description = args[1]
		}

		boat, err := services.BoatService.CreateBoat(cmd.Context(), domain.NewBoat(args[0], description))
		if err != nil {
			return fmt.Errorf("failed to add boat: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Boat '%s' created with id %d\n", boat.Name, boat.ID)
		return nil
	},
}

func init() {
	boatsCmd.AddCommand(boatsListCmd)
	boatsCmd.AddCommand(boatsAddCmd)
	rootCmd.AddCommand(boatsCmd)
}
