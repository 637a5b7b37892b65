package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/govbills-crawler/internal/logging"
	"github.com/JakeFAU/govbills-crawler/internal/report"
	"github.com/JakeFAU/govbills-crawler/internal/server"
)

// newStatsCmd creates the 'stats' subcommand.
func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Prints counts and the most recent records in the store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStats(cmd, opts)
		},
	}
}

func runStats(cmd *cobra.Command, opts *rootOptions) error {
	cfg, logger, err := opts.load()
	if err != nil {
		return err
	}
	defer func() { _ = logging.Sync(logger) }()

	store, err := server.OpenStore(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Warn("store close failed", zap.Error(cerr))
		}
	}()

	st, err := store.Stats(cmd.Context())
	if err != nil {
		return err
	}
	report.Stats(cmd.OutOrStdout(), st)
	return nil
}
