package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear local data for the account",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		userKey := e.manager.UserKey()
		if userKey == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
			return nil
		}

		if err := e.manager.Clear(); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		if err := e.store.ClearUser(userKey); err != nil {
			return fmt.Errorf("clear local data: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	},
}
