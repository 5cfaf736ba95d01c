package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nilabh/campusmate/internal/app"
)

// runApp builds the shared services and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := buildEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	return app.Run(app.Options{
		Client:  e.client,
		Manager: e.manager,
		Store:   e.store,
		Logger:  e.log,
	})
}
