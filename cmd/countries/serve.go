package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"country-explorer/internal/api"
	"country-explorer/internal/config"
	"country-explorer/internal/metrics"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web front-end and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			return run(cmd.Context(), a.cfg, a.logger)
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address, overrides server.addr")
	return cmd
}

// run sets up and runs the web server until ctx ends or a termination signal
// arrives.
func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	countryService := newService(cfg, logger, m)
	countryHandler, err := api.NewCountryHandler(countryService, logger, api.Options{
		PageSize:       cfg.UI.PageSize,
		SearchDebounce: cfg.UI.SearchDebounce,
		DefaultTheme:   cfg.UI.Theme,
	})
	if err != nil {
		return err
	}
	router := api.NewRouter(countryHandler, m, logger)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("addr", cfg.Server.Addr),
			zap.String("upstream", cfg.API.BaseURL))
		// ErrServerClosed is the expected result of a graceful shutdown.
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("error starting server: %w", err)
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = config.Default().Server.ShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info("server gracefully stopped")
	return nil
}
