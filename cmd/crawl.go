package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/govbills-crawler/internal/logging"
	"github.com/JakeFAU/govbills-crawler/internal/report"
	"github.com/JakeFAU/govbills-crawler/internal/server"
)

// newCrawlCmd creates and configures the 'crawl' subcommand.
func newCrawlCmd(opts *rootOptions) *cobra.Command {
	var statsOnly bool
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Crawls the selected sites and stores what it finds",
		Long: `Crawls the selected sites (whitehouse, congress, govtrack or all), upserting
every bill and presidential action into the configured store, then prints a
run summary followed by the store statistics.`,
		Example: `  govbills crawl --site congress --db-path bills.db
  govbills crawl --site all --driver postgres --dsn postgres://localhost/bills
  govbills crawl --stats`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if statsOnly {
				return runStats(cmd, opts)
			}
			return runCrawl(cmd, opts)
		},
	}
	cmd.Flags().StringSliceP("site", "s", []string{"all"}, "sites to crawl: whitehouse, congress, govtrack or all")
	cmd.Flags().BoolVar(&statsOnly, "stats", false, "print store statistics and exit without crawling")
	return cmd
}

func runCrawl(cmd *cobra.Command, opts *rootOptions) error {
	cfg, logger, err := opts.load()
	if err != nil {
		return err
	}
	defer func() { _ = logging.Sync(logger) }()

	app, err := server.Build(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(context.WithoutCancel(cmd.Context())); cerr != nil {
			logger.Warn("shutdown failed", zap.Error(cerr))
		}
	}()

	summary, crawlErr := app.Crawl(cmd.Context())
	out := cmd.OutOrStdout()
	report.Summary(out, summary)

	if errors.Is(crawlErr, context.Canceled) {
		logger.Warn("crawl interrupted, partial results kept", zap.Error(crawlErr))
	} else if crawlErr != nil {
		return crawlErr
	}

	st, err := app.Stats(context.WithoutCancel(cmd.Context()))
	if err != nil {
		return fmt.Errorf("stats after crawl: %w", err)
	}
	report.Stats(out, st)
	return nil
}
