package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nilabh/campusmate/internal/account"
	"github.com/nilabh/campusmate/internal/api"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in without opening the TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		reader := bufio.NewReader(os.Stdin)

		university, err := promptLine(cmd, reader, "University: ")
		if err != nil {
			return err
		}
		rollNo, err := promptLine(cmd, reader, "Roll number: ")
		if err != nil {
			return err
		}

		fullName := ""
		if v, err := e.client.Verify(cmd.Context(), university, rollNo); err == nil && v.Exists {
			fullName = v.FullName
			fmt.Fprintf(cmd.OutOrStdout(), "Hi, %s\n", fullName)
		}
		if fullName == "" {
			if fullName, err = promptLine(cmd, reader, "Full name: "); err != nil {
				return err
			}
		}

		fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		rawPass, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}

		resp, err := e.client.Login(cmd.Context(), api.LoginRequest{
			University: university,
			RollNo:     rollNo,
			FullName:   fullName,
			Password:   string(rawPass),
		})
		if err != nil {
			if api.IsUnauthorized(err) {
				return errors.New("login failed: wrong credentials")
			}
			return fmt.Errorf("login failed: %w", err)
		}

		sess := account.Session{
			Token: resp.AccessToken,
			Profile: account.Profile{
				University: resp.User.University,
				RollNo:     resp.User.RollNo,
				FullName:   resp.User.FullName,
			},
			Role: resp.User.Role,
		}
		if err := e.manager.Save(sess); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		// Stale queued work from an earlier session must not replay
		// under the fresh credentials.
		if key := e.manager.UserKey(); key != "" {
			if err := e.store.Uploads().ClearQueue(cmd.Context(), key); err != nil {
				return fmt.Errorf("clear upload queue: %w", err)
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s.\n", resp.User.FullName)
		return nil
	},
}

func promptLine(cmd *cobra.Command, reader *bufio.Reader, prompt string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", errors.New("value cannot be empty")
	}
	return line, nil
}
