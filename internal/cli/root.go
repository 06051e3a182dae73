// Package cli wires the regscope commands: the dashboard TUI at the root and
// one-shot listing commands for scripts.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"regscope/internal/api"
	"regscope/internal/config"
	"regscope/internal/logging"
)

// RootOptions holds global flags and what PersistentPreRunE builds from them
type RootOptions struct {
	ConfigPath string
	APIURL     string
	Verbose    bool

	Config *config.Config
	Logger *zap.Logger
}

// NewRootCommand creates the root command. Without a subcommand it starts
// the dashboard.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "regscope",
		Short:         "Browse federal agencies and their regulation statistics",
		Long:          "regscope is a terminal dashboard for agency regulation statistics: word counts, section counts and corrections per year.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// config init must work even when the existing file is broken
			if cmd.Annotations[skipConfigAnnotation] == "true" {
				return nil
			}
			return opts.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.Logger != nil {
				_ = opts.Logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default "+config.DefaultPath()+")")
	cmd.PersistentFlags().StringVar(&opts.APIURL, "api-url", "", "API base URL, overrides the config file and "+config.EnvAPIURL)
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log at debug level")

	cmd.AddCommand(NewAgenciesCommand(opts))
	cmd.AddCommand(NewAgencyCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

// Execute runs the root command and returns the process exit code
func Execute() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cmd := NewRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

const skipConfigAnnotation = "regscope/skip-config"

// load reads the config file and builds the logger
func (o *RootOptions) load() error {
	cfg, err := config.NewConfigService(o.ConfigPath).Load()
	if err != nil {
		return err
	}
	if o.APIURL != "" {
		cfg.APIBaseURL = o.APIURL
	}
	o.Config = cfg

	logger, err := logging.New(cfg.LogFile, cfg.LogLevel, o.Verbose)
	if err != nil {
		return err
	}
	o.Logger = logger
	o.Logger.Debug("config loaded",
		zap.String("api", cfg.APIBaseURL),
		zap.String("locale", cfg.Locale))
	return nil
}

// newClient creates an API client from the loaded config
func (o *RootOptions) newClient() (*api.Client, error) {
	return api.NewClient(o.Config.APIBaseURL,
		api.WithTimeout(o.Config.RequestTimeout.Duration),
		api.WithRateLimit(o.Config.RequestsPerSecond),
		api.WithLogger(o.Logger))
}
