package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rpggio/brewlog/internal/app"
	"github.com/rpggio/brewlog/internal/config"
	"github.com/spf13/cobra"
)

// Version is set via ldflags at build time.
var Version = "dev"

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	dbPath   string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "brewlog",
		Short:         "Personal coffee brewing log",
		Long:          "brewlog records coffee beans and brewing sessions, computes brew ratios and summarizes tasting scores.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "path to the SQLite database (overrides BREWLOG_DB_PATH)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newBeanCmd(opts))
	cmd.AddCommand(newBrewCmd(opts))
	cmd.AddCommand(newStatsCmd(opts))
	cmd.AddCommand(newRatioCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "brewlog %s\n", Version)
		},
	}
}

// loadConfig reads the environment and applies the root flags on top.
func (o *rootOptions) loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if o.dbPath != "" {
		cfg.DB.Path = o.dbPath
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	return cfg, nil
}

// openApp opens the database for a one-shot command. Logs go to stderr so
// they never mix with command output.
func (o *rootOptions) openApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	if o.logLevel == "" {
		cfg.Log.Level = "warn"
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	a, err := app.Open(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DB.Path, err)
	}
	return a, nil
}

func execute(cmd *cobra.Command, stderr io.Writer) int {
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd(), os.Stderr))
}
