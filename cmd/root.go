package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepcoach/internal/config"
	"github.com/abhisek/prepcoach/internal/jobsource"
	"github.com/abhisek/prepcoach/internal/logging"
	"github.com/abhisek/prepcoach/internal/prepapi"
)

var rootCmd = &cobra.Command{
	Use:   "prepcoach",
	Short: "Interview prep assistant for the terminal",
	Long: `Paste a job description and get a skills analysis, a study plan,
practice questions and feedback on your answers from the Analysis Service.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("api-url", "", "Analysis Service base URL (overrides PREPCOACH_API_URL)")
	pf.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/prepcoach/config.yaml)")
	pf.String("log-file", "", "Path to the JSON log file")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.Duration("timeout", 0, "Per-request timeout, e.g. 90s")
	pf.String("job-file", "", "Read the job description from a file (- for stdin)")
	pf.String("job-url", "", "Fetch the job description from a posting URL")
	pf.Bool("browser", false, "Render --job-url in headless Chrome before extracting")

	rootCmd.AddCommand(plainCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(versionCmd)
}

// env is what every command needs: resolved config, a logger and a
// service client wrapped with call logging.
type env struct {
	cfg     config.Config
	logger  *slog.Logger
	service prepapi.Service
	closer  io.Closer
}

func (e *env) Close() error {
	if e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

// setup resolves configuration with flags taking precedence over the
// file and environment, then builds the logger and service client.
func setup(cmd *cobra.Command) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, closer, err := logging.Open(cfg.LogFile, cfg.Level())
	if err != nil {
		// Logging is best effort; Open already fell back to discarding.
		cmd.PrintErrln("Logging disabled:", err)
	}

	client, err := prepapi.NewClient(prepapi.Options{
		BaseURL:   cfg.APIURL,
		Timeout:   cfg.Timeout,
		UserAgent: "prepcoach/" + version,
	})
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	logger.Info("starting", "command", cmd.Name(), "api_url", client.BaseURL(), "version", version)
	return &env{
		cfg:     cfg,
		logger:  logger,
		service: prepapi.WithLogging(client, logger),
		closer:  closer,
	}, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.APIURL, _ = flags.GetString("api-url")
	}
	if flags.Changed("log-file") {
		cfg.LogFile, _ = flags.GetString("log-file")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("timeout") {
		var d time.Duration
		d, _ = flags.GetDuration("timeout")
		cfg.Timeout = d
	}
}

// loadDescription reads a preloaded job description from --job-file or
// --job-url. It returns "" when neither is set.
func loadDescription(cmd *cobra.Command, e *env) (string, error) {
	file, _ := cmd.Flags().GetString("job-file")
	jobURL, _ := cmd.Flags().GetString("job-url")
	browser, _ := cmd.Flags().GetBool("browser")

	opts := jobsource.Options{File: file, URL: jobURL, Browser: browser}
	if jobURL != "" {
		opts.Fetcher = jobsource.NewFetcher(e.cfg.Timeout, browser)
	}
	res, err := jobsource.Load(cmd.Context(), opts, os.Stdin)
	if err != nil {
		return "", fmt.Errorf("load job description: %w", err)
	}
	if hint := res.Hint(); hint != "" {
		cmd.PrintErrln("Warning:", hint)
		e.logger.Warn("sparse job posting", "url", res.URL, "platform", string(res.Platform), "chars", len([]rune(res.Text)))
	}
	if res.Text != "" {
		e.logger.Info("job description loaded", "file", file, "url", jobURL, "chars", len([]rune(res.Text)))
	}
	return res.Text, nil
}
