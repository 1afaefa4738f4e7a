package command

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/stolasapp/barre/internal/sec"
	"github.com/stolasapp/barre/internal/storage/db"
)

const userListLimit = 1000

func userCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User administration commands",
	}
	cmd.AddCommand(
		userCreateCommand(),
		userPromoteCommand(),
		userDemoteCommand(),
		userListCommand(),
		userDeleteCommand(),
	)
	return cmd
}

func userCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME EMAIL",
		Short: "Create user",
		Long: "Creates a user entry for the provided username and email. Passwords may be\n" +
			"provided via stdin or through the interactive prompt.",

		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (runErr error) {
			_, logger, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			name, email := args[0], args[1]
			if passwd, err := prompt("password: ", true); err != nil {
				return err
			} else if hash, err := sec.HashPassword(string(passwd)); err != nil {
				return err
			} else if _, err = store.CreateUser(cmd.Context(), db.User{
				Username:     name,
				Email:        email,
				PasswordHash: hash,
			}); err != nil {
				return err
			}

			logger.InfoContext(cmd.Context(), "created user", slog.String("name", name))
			return nil
		},
	}
}

func userPromoteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "promote NAME",
		Short: "Grant admin rights",
		Long: "Marks the named user as an admin, allowing them to moderate the catalog.\n" +
			"Admin rights are only ever granted from this command, never over the API.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setAdmin(cmd, args[0], true)
		},
	}
}

func userDemoteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demote NAME",
		Short: "Revoke admin rights",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setAdmin(cmd, args[0], false)
		},
	}
}

func setAdmin(cmd *cobra.Command, name string, isAdmin bool) (runErr error) {
	_, logger, store, err := loadConfig(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			runErr = errors.Join(runErr, err)
		}
	}()

	if err = store.SetAdmin(cmd.Context(), name, isAdmin); err != nil {
		return err
	}
	logger.InfoContext(cmd.Context(), "updated admin flag",
		slog.String("name", name),
		slog.Bool("is_admin", isAdmin),
	)
	return nil
}

func userListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			_, _, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			users, err := store.ListUsers(cmd.Context(), "", userListLimit)
			if err != nil {
				return err
			}
			for _, user := range users {
				admin := ""
				if user.IsAdmin {
					admin = " (admin)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s%s\n", user.Username, user.Email, admin)
			}
			return nil
		},
	}
}

func userDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete user",
		Long: "Permanently deletes the user. Catalog entries they submitted are kept with\n" +
			"the submitter reference cleared. This operation is permanent and irreversible.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (runErr error) {
			_, logger, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			name := args[0]
			logger = logger.With(slog.String("name", name))
			user, err := store.GetUserByName(cmd.Context(), name)
			if err != nil {
				return err
			}
			resp, err := prompt("Are you sure you want to delete this user? [y|N] ", false)
			if !bytes.Equal(resp, []byte{'y'}) || err != nil {
				logger.InfoContext(cmd.Context(), "aborted user deletion")
				return err
			}
			if err = store.DeleteUser(cmd.Context(), user.ID); err != nil {
				return err
			}
			logger.InfoContext(cmd.Context(), "user deleted")
			return nil
		},
	}
}
