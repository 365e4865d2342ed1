package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepcoach/internal/prepapi"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the Analysis Service is reachable and compatible",
	RunE:  runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	h, err := e.service.Health(cmd.Context())
	if err != nil {
		return fmt.Errorf("health check %s: %w", e.service.BaseURL(), err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Service:  %s\n", e.service.BaseURL())
	fmt.Fprintf(out, "Status:   %s\n", h.Status)
	if h.Message != "" {
		fmt.Fprintf(out, "Message:  %s\n", h.Message)
	}
	fmt.Fprintf(out, "Version:  %s (client requires %s)\n", h.Version, prepapi.MinServiceVersion)

	if err := prepapi.CheckVersion(h.Version); err != nil {
		return err
	}
	fmt.Fprintln(out, "OK")
	return nil
}
