// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/soundalike/internal/api"
	"github.com/tomtom215/soundalike/internal/logging"
	"github.com/tomtom215/soundalike/internal/supervisor"
	"github.com/tomtom215/soundalike/internal/supervisor/services"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Runs the HTTP API under a supervisor tree. Models are built at startup
and rebuilt when the dataset files change (cache.watch, cache.poll_interval).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg
	logging.Info().
		Str("dataset", cfg.Dataset.Path).
		Str("history", cfg.History.Path).
		Str("reader", cfg.Dataset.Reader).
		Msg("Starting Soundalike")

	lib, err := a.library()
	if err != nil {
		return err
	}

	handler := api.NewHandler(lib, cfg.Recommend.MaxK)
	handler.SetRefreshTimeout(cfg.Server.RefreshTimeout)
	router := api.NewRouter(handler, api.ChiMiddlewareConfigFromServer(cfg.Server))
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	dataLogger := logging.WithComponent("data")
	tree.AddDataService(services.NewWarmupService(lib, cfg.Cache.PollInterval, dataLogger))
	if cfg.Cache.Watch {
		tree.AddDataService(services.NewWatcherService(lib, cfg.Cache.WatchDebounce, dataLogger))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Bool("watch", cfg.Cache.Watch).Msg("Starting supervisor tree")

	err = tree.Serve(ctx)

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}
	logging.Info().Msg("Soundalike stopped")
	return nil
}
