// Package validation exposes the validation module to the process entrypoint.
package validation

import (
	"log/slog"

	"recordcheck/internal/validation/factory"
	"recordcheck/internal/validation/handler"
	"recordcheck/internal/validation/service"
)

// Service is the validation orchestrator.
type Service = service.Service

// Handler wires HTTP endpoints to the validation service.
type Handler = handler.Handler

// Factory selects storage backends for the service.
type Factory = factory.Factory

// NewFactory constructs the backend selector.
func NewFactory(records factory.RecordsBuilder, durable factory.ProcessesBuilder, opts ...factory.Option) *Factory {
	return factory.New(records, durable, opts...)
}

// NewHandler constructs the HTTP handler for validation routes.
func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
