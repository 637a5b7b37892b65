// Package cmd defines and implements the CLI commands for the govbills executable.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/JakeFAU/govbills-crawler/internal/config"
	"github.com/JakeFAU/govbills-crawler/internal/logging"
)

// rootOptions carries state shared by every subcommand.
type rootOptions struct {
	configPath string
	viper      *viper.Viper
}

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{viper: viper.New()}

	cmd := &cobra.Command{
		Use:   "govbills",
		Short: "Scrapes bills and executive actions from U.S. government websites.",
		Long: `govbills crawls congress.gov, govtrack.us and whitehouse.gov, normalizes
bills and presidential actions into one schema and upserts them into SQLite
or Postgres, keyed by identifiers that stay stable across re-crawls.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlags(opts.viper, cmd.Flags())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (YAML, TOML or JSON)")
	flags.String("driver", config.DriverSQLite, "storage driver: sqlite or postgres")
	flags.String("db-path", "government_bills.db", "path to the SQLite database")
	flags.String("dsn", "", "Postgres connection string")

	cmd.AddCommand(newCrawlCmd(opts), newStatsCmd(opts))
	return cmd
}

// load resolves the configuration and builds the logger.
func (o *rootOptions) load() (config.Config, *zap.Logger, error) {
	cfg, err := config.LoadViper(o.viper, o.configPath)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("logger init failed: %w", err)
	}
	return cfg, logger, nil
}

// flagKeys maps CLI flags onto config keys. Flags a command does not define
// are skipped.
var flagKeys = []struct{ key, flag string }{
	{"storage.driver", "driver"},
	{"storage.path", "db-path"},
	{"storage.dsn", "dsn"},
	{"sites.enabled", "site"},
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for _, fk := range flagKeys {
		f := flags.Lookup(fk.flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(fk.key, f); err != nil {
			return fmt.Errorf("bind --%s: %w", fk.flag, err)
		}
	}
	return nil
}

// Execute is the main entry point.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}
