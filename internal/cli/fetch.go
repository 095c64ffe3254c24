package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/svtypes/internal/fetcher"
)

// ErrPagesFailed is returned when at least one page could not be downloaded.
var ErrPagesFailed = errors.New("some pages failed to download")

// NewFetchCommand creates the command that downloads the reference pages.
func NewFetchCommand() *cobra.Command {
	var (
		common    commonFlags
		baseURL   string
		outputDir string
		userAgent string
		delay     time.Duration
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:          "svtypes-fetch",
		Short:        "Download the Synthesizer V Studio scripting API reference",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := common.load(cmd, func(cfg *Config, changed func(string) bool) {
				if changed("base-url") {
					cfg.Fetch.BaseURL = baseURL
				}
				if changed("output") {
					cfg.Fetch.OutputDir = outputDir
				}
				if changed("user-agent") {
					cfg.Fetch.UserAgent = userAgent
				}
				if changed("delay") {
					cfg.Fetch.Delay = delay
				}
				if changed("timeout") {
					cfg.Fetch.Timeout = timeout
				}
			})
			if err != nil {
				return err
			}

			client, err := fetcher.NewClient(cfg.Fetch.BaseURL,
				fetcher.WithUserAgent(cfg.Fetch.UserAgent),
				fetcher.WithTimeout(cfg.Fetch.Timeout),
				fetcher.WithDelay(cfg.Fetch.Delay),
				fetcher.WithLogger(log),
			)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printTitle(out, "Downloading scripting API documentation to %s", cfg.Fetch.OutputDir)
			printLine(out, "Base URL: %s", cfg.Fetch.BaseURL)

			result, err := client.Download(cmd.Context(), fetcher.DefaultPages(), cfg.Fetch.OutputDir)
			if err != nil {
				return fmt.Errorf("download: %w", err)
			}

			printRule(out)
			for _, f := range result.Failures {
				printFailure(out, "%s: %v", f.Page, f.Err)
			}
			printSuccess(out, "Successful: %d", len(result.Succeeded))
			if result.Failed() > 0 {
				printFailure(out, "Failed: %d", result.Failed())
			} else {
				printLine(out, "  Failed: 0")
			}
			printLine(out, "  Total: %d", result.Total())
			if abs, err := filepath.Abs(cfg.Fetch.OutputDir); err == nil {
				printLine(out, "Documentation saved to: %s", abs)
			}

			if result.Failed() > 0 {
				return fmt.Errorf("%w: %d of %d", ErrPagesFailed, result.Failed(), result.Total())
			}
			return nil
		},
	}

	common.register(cmd)
	cmd.Flags().StringVar(&baseURL, "base-url", fetcher.DefaultBaseURL, "Base URL of the documentation site")
	cmd.Flags().StringVar(&outputDir, "output", "dreamtonics-api", "Directory to save pages into")
	cmd.Flags().StringVar(&userAgent, "user-agent", fetcher.DefaultUserAgent, "User-Agent header sent with each request")
	cmd.Flags().DurationVar(&delay, "delay", fetcher.DefaultDelay, "Pause between requests")
	cmd.Flags().DurationVar(&timeout, "timeout", fetcher.DefaultTimeout, "Per-request timeout")

	return cmd
}
