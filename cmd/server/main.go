package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"recordcheck/internal/platform/config"
	"recordcheck/internal/platform/httpserver"
	"recordcheck/internal/platform/logger"
	"recordcheck/internal/platform/metrics"
	"recordcheck/internal/validation"
	"recordcheck/internal/validation/factory"
	valmetrics "recordcheck/internal/validation/metrics"
	"recordcheck/internal/validation/service"
)

// main wires configuration, storage and HTTP, and keeps the server lifecycle small.
// Business logic lives in internal/validation.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "recordcheck: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := metrics.NewRegistry()
	vm := valmetrics.New(reg)
	scheduler := service.NewTrackedScheduler()

	stores := newBackends(cfg, log)
	defer stores.Close()

	result, err := validation.NewFactory(stores.Records, stores.Processes,
		factory.WithLogger(log),
		factory.WithMetrics(vm),
		factory.WithBackendName(cfg.Validation.ProcessBackend),
		factory.WithServiceOptions(
			service.WithLogger(log),
			service.WithMetrics(vm),
			service.WithScheduler(scheduler),
			service.WithContactField(cfg.Validation.ContactField),
		),
	).Build(ctx)
	if err != nil {
		return err
	}

	router := newRouter(cfg, log, reg, result, stores.Probes())
	srv := httpserver.New(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting recordcheck",
			"addr", cfg.Server.Addr,
			"tier", result.Tier,
			"process_backend", result.Backend,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		// In-flight executions are not cancelled; give them until the deadline to finish.
		if err := scheduler.Wait(shutdownCtx); err != nil {
			log.Warn("validation executions still running at shutdown", "error", err)
		}
		return nil
	})
	return g.Wait()
}
