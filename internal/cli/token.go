package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/martijn/boatapi/internal/core/service"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var tokenUsername string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Log in and print a bearer token",
	Long:  "Prompt for the configured credentials and print a bearer token for use with the API",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		username := tokenUsername
		if username == "" {
			fmt.Fprint(cmd.OutOrStdout(), "Username: ")
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read username: %w", err)
			}
			username = strings.TrimSpace(line)
		}

		// Prompt for password
		fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		password, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		result, err := services.AuthService.Login(cmd.Context(), username, string(password))
		if err != nil {
			var svcErr *service.Error
			if errors.As(err, &svcErr) && svcErr.Kind == service.KindAuthentication {
				return fmt.Errorf("authentication failed: %s", svcErr.Message)
			}
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), result.Token)
		fmt.Fprintf(os.Stderr, "Token type %s, expires in %ds\n", result.Type, result.ExpiresIn)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenUsername, "username", "u", "", "username to log in as (prompted when empty)")
	rootCmd.AddCommand(tokenCmd)
}
