package command

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/stolasapp/barre/internal/client"
)

func registerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "register NAME EMAIL",
		Short: "Create an account on the configured server",
		Long: "Registers an account over the API and stores the resulting session.\n" +
			"Passwords may be provided via stdin or through the interactive prompt.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiClient(cmd.Context())
			if err != nil {
				return err
			}
			passwd, err := prompt("password: ", true)
			if err != nil {
				return err
			}

			session, err := c.Register(cmd.Context(), args[0], args[1], string(passwd))
			if err != nil {
				return err
			}
			if err := session.Save(); err != nil {
				return err
			}
			slog.InfoContext(cmd.Context(), "registered and logged in",
				slog.String("username", session.User.Username),
			)
			return nil
		},
	}
}

func loginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login NAME",
		Short: "Log in to the configured server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiClient(cmd.Context())
			if err != nil {
				return err
			}
			passwd, err := prompt("password: ", true)
			if err != nil {
				return err
			}

			session, err := c.Login(cmd.Context(), args[0], string(passwd))
			if err != nil {
				return err
			}
			if err := session.Save(); err != nil {
				return err
			}
			slog.InfoContext(cmd.Context(), "logged in",
				slog.String("username", session.User.Username),
				slog.Bool("is_admin", session.User.IsAdmin),
			)
			return nil
		},
	}
}

func logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return client.ClearSession()
		},
	}
}

func whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity of the stored session",
		Long: "Verifies the stored session token against the server and prints the\n" +
			"identity embedded in it.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := apiClient(cmd.Context())
			if err != nil {
				return err
			}
			claims, err := c.Me(cmd.Context())
			if err != nil {
				return err
			}

			admin := ""
			if claims.IsAdmin {
				admin = " (admin)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", claims.Username, admin)
			return nil
		},
	}
}
