package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show locally recorded quiz statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		userKey := e.manager.UserKey()
		if userKey == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "Not signed in. Run 'campusmate login' first.")
			return nil
		}

		stats, err := e.store.Activity().Stats(cmd.Context(), userKey)
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Sessions:  %d\n", stats.Sessions)
		fmt.Fprintf(out, "Answered:  %d\n", stats.Answered)
		fmt.Fprintf(out, "Correct:   %d\n", stats.Correct)
		fmt.Fprintf(out, "Accuracy:  %.0f%%\n", stats.Accuracy()*100)

		if len(stats.Topics) > 0 {
			fmt.Fprintln(out, "\nBy topic:")
			for _, t := range stats.Topics {
				fmt.Fprintf(out, "  %-24s %d/%d (%.0f%%)\n", t.Topic, t.Correct, t.Answered, t.Accuracy()*100)
			}
		}
		return nil
	},
}
