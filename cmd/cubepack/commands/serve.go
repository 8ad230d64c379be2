package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/piwi3910/cubepack/internal/api"
	"github.com/piwi3910/cubepack/internal/project"
	"github.com/piwi3910/cubepack/internal/telemetry"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func (a *app) newServeCmd() *cobra.Command {
	var noHistory bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the packing HTTP API",
		Long: `Serve the packer over HTTP.

Endpoints:
  GET  /               health check
  POST /optimize       pack a request
  POST /compare        pack a request under every policy
  GET  /containers     container catalog
  GET  /history        recorded runs
  GET  /history/{id}   one recorded run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, noHistory)
		},
	}

	f := cmd.Flags()
	f.String("listen", ":8000", "address to listen on")
	f.String("db", "cubepack.db", "sqlite database for the run history")
	f.String("otel-endpoint", "", "OTLP/HTTP trace endpoint (default OTEL_EXPORTER_OTLP_ENDPOINT)")
	f.String("candidate-order", "distance", "default candidate order: distance, yzx, zyx")
	f.String("item-order", "volume", "default item order: volume, input")
	f.BoolVar(&noHistory, "no-history", false, "do not record runs")
	return cmd
}

func (a *app) serve(ctx context.Context, noHistory bool) error {
	settings := a.cfg.Settings()
	if err := settings.Validate(); err != nil {
		return err
	}

	shutdownTracing, err := telemetry.Init(ctx, Version, a.cfg.OtelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			a.logger.Warn("tracer shutdown failed", "error", err)
		}
	}()

	var runs api.RunStore
	if !noHistory && a.cfg.Database != "" {
		db, err := a.openStore()
		if err != nil {
			return err
		}
		defer db.Close()
		runs = db
		a.logger.Info("recording runs", "database", a.cfg.Database)
	}

	cat, err := project.LoadCatalog(a.catalogFile)
	if err != nil {
		a.logger.Warn("failed to load catalog", "path", a.catalogFile, "error", err)
	}

	srv := api.NewServer(api.Config{
		Defaults:    settings,
		Rates:       a.cfg.QuoteRates(),
		CORSOrigins: a.cfg.CORSOrigins,
		Catalog:     cat,
	}, runs, a.logger)

	httpSrv := &http.Server{
		Addr:              a.cfg.Listen,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening", "addr", a.cfg.Listen)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", a.cfg.Listen, err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(sctx)
}
