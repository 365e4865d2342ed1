package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/prepcoach/internal/app"
)

// runApp resolves dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	desc, err := loadDescription(cmd, e)
	if err != nil {
		return err
	}

	return app.Run(cmd.Context(), app.Options{
		Service:        e.service,
		Logger:         e.logger,
		JobDescription: desc,
	})
}
