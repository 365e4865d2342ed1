package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepcoach/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a Markdown prep pack for a job description",
	Long: `Analyze a job description, build the study plan and generate practice
questions for every topic, then print everything as Markdown.

The description comes from --job-file or --job-url; --job-file - reads stdin.`,
	Example: `  prepcoach report --job-file posting.txt > prep.md
  pbpaste | prepcoach report --job-file -`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().Int("concurrency", report.DefaultConcurrency, "Topics to generate questions for in parallel")
}

func runReport(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	desc, err := loadDescription(cmd, e)
	if err != nil {
		return err
	}
	if desc == "" {
		return errors.New("no job description: use --job-file or --job-url")
	}

	concurrency, _ := cmd.Flags().GetInt("concurrency")
	b := &report.Builder{Service: e.service, Logger: e.logger, Concurrency: concurrency}
	pack, err := b.Build(cmd.Context(), desc)
	if err != nil {
		return err
	}

	if err := pack.Write(cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	for _, t := range pack.Topics {
		if t.Err != nil {
			cmd.PrintErrf("questions for %q failed: %v\n", t.Topic, t.Err)
		}
	}
	return nil
}
