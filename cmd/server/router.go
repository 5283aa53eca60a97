package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"recordcheck/internal/platform/config"
	"recordcheck/internal/platform/metrics"
	"recordcheck/internal/validation"
	"recordcheck/internal/validation/factory"
	"recordcheck/internal/validation/handler"
	"recordcheck/pkg/platform/middleware/request"
	"recordcheck/pkg/platform/middleware/requesttime"
)

func newRouter(cfg config.Config, log *slog.Logger, reg *prometheus.Registry, result *factory.Result, probes []handler.Probe) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(request.RequestID)
	r.Use(request.Logger(log))
	r.Use(chimw.Recoverer)
	r.Use(requesttime.Middleware)
	r.Use(chimw.Timeout(cfg.Server.RequestTimeout))

	r.Get("/health", handler.Health(log, result.Tier, result.Backend, result.Degraded(), probes...))
	r.Handle("/metrics", metrics.Handler(reg))
	validation.NewHandler(result.Service, log).Register(r)
	return r
}
