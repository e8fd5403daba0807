package cli

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/martijn/boatapi/internal/core/service"
	"github.com/spf13/cobra"
)

var identityCmd = &cobra.Command{
	Use:   "identity <username>",
	Short: "Show the configured login identity",
	Long:  "Show the configured login identity with a bcrypt hash of its password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		verifier := service.NewCredentialVerifier(cfg.AuthUsername, cfg.AuthPassword)

		identity, err := verifier.LoadIdentity(args[0])
		if errors.Is(err, service.ErrUnknownIdentity) {
			fmt.Fprintf(os.Stderr, "No identity named '%s'\n", args[0])
			return err
		}
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "USERNAME\tPASSWORD HASH")
		fmt.Fprintf(w, "%s\t%s\n", identity.Username, identity.PasswordHash)
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(identityCmd)
}
