package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"country-explorer/internal/cache"
	"country-explorer/internal/client"
	"country-explorer/internal/config"
	"country-explorer/internal/httpclient"
	"country-explorer/internal/logging"
	"country-explorer/internal/metrics"
	"country-explorer/internal/service"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "countries",
		Short:        "Browse the countries of the world",
		Long:         `countries serves a web browser for the countries API, or browses it from the terminal.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default ./countries.yaml or $COUNTRIES_CONFIG)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log.level")

	root.AddCommand(
		newServeCmd(a),
		newBrowseCmd(a),
		newListCmd(a),
		newShowCmd(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	a.cfg, a.logger = cfg, logger
	return nil
}

// newService wires the upstream client, the optional snapshot cache and the
// country service.
func newService(cfg config.Config, logger *zap.Logger, m *metrics.Metrics) service.CountryService {
	hc := httpclient.New(httpclient.Options{
		Timeout:         cfg.API.Timeout,
		RetryMaxElapsed: cfg.API.RetryMaxElapsed,
		UserAgent:       cfg.API.UserAgent,
		Logger:          logger,
	})
	countries := client.NewCountriesClient(cfg.API.BaseURL, hc)

	var c cache.Cache = cache.Nop{}
	if cfg.Cache.TTL > 0 {
		c = cache.NewInMemoryCache(cfg.Cache.TTL)
	}
	return service.NewCountryService(c, countries, m, logger)
}
