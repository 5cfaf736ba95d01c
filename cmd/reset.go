package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe all locally stored data",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			fmt.Fprint(cmd.OutOrStdout(), "This deletes all local quiz history, uploads, and preferences. Type 'reset' to confirm: ")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return fmt.Errorf("read confirmation: %w", err)
			}
			if strings.TrimSpace(line) != "reset" {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		e, err := buildEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		if err := e.store.Reset(); err != nil {
			return fmt.Errorf("reset store: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Local data cleared.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("force", false, "Skip the confirmation prompt")
}
