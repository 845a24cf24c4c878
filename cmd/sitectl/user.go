package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/advisorsite/internal/db"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// NewUserCommand groups the admin account commands.
func NewUserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage admin accounts",
	}
	cmd.AddCommand(newUserAddCommand())
	cmd.AddCommand(newUserPasswordCommand())
	return cmd
}

func newUserAddCommand() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Create an admin account if it does not exist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := openDatabase(cmd)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			return addUser(cmd, gdb, args[0], password)
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "password for the new account")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func addUser(cmd *cobra.Command, gdb *gorm.DB, username, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return errors.New("username and password are required")
	}

	created, err := db.EnsureUser(gdb, username, password)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	if !created {
		fmt.Fprintf(cmd.OutOrStdout(), "User %q already exists, nothing to do.\n", username)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created admin user %q.\n", username)
	return nil
}

func newUserPasswordCommand() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "passwd <username>",
		Short: "Reset the password of an existing admin account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := openDatabase(cmd)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			if err := db.SetPassword(gdb, args[0], password); err != nil {
				return fmt.Errorf("reset password: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Password updated for %q.\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "new password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
