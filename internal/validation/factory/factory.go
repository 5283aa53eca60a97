// Package factory wires the validation service to its storage backends.
//
// Construction is tiered. The durable tier pairs the durable record store with a durable
// process store. If building it fails, the fallback tier keeps the durable record store and
// tracks processes in memory, so a storage outage costs process durability rather than
// startup. If the fallback fails too, Build fails; there is no third tier.
package factory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"recordcheck/internal/validation/metrics"
	"recordcheck/internal/validation/service"
	"recordcheck/internal/validation/store/process"
	dErrors "recordcheck/pkg/domain-errors"
	"recordcheck/pkg/platform/sentinel"
)

// Storage tiers.
const (
	TierDurable  = "durable"
	TierFallback = "fallback"

	BackendMemory = "memory"
)

// ErrBackendConstruction is returned when no tier could be built.
var ErrBackendConstruction = dErrors.Wrap(sentinel.ErrUnavailable, dErrors.CodeUnavailable, "validation backend construction failed")

// RecordsBuilder connects the durable record store.
type RecordsBuilder func(ctx context.Context) (service.RecordStore, error)

// ProcessesBuilder connects a durable process store. It should verify connectivity so
// that an unreachable backend fails here rather than on the first request.
type ProcessesBuilder func(ctx context.Context) (service.ProcessStore, error)

// Result is the constructed service and the tier it runs on.
type Result struct {
	Service *service.Service
	Tier    string
	Backend string
}

// Degraded reports whether processes are tracked in memory only.
func (r *Result) Degraded() bool {
	return r.Tier == TierFallback
}

// Factory builds a validation service.
type Factory struct {
	records        RecordsBuilder
	durable        ProcessesBuilder
	backend        string
	logger         *slog.Logger
	metrics        *metrics.Metrics
	serviceOptions []service.Option
	memoryOptions  []process.Option
}

type Option func(f *Factory)

func WithLogger(logger *slog.Logger) Option {
	return func(f *Factory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithMetrics records the selected tier on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(f *Factory) {
		f.metrics = m
	}
}

// WithBackendName labels the durable process backend in results, logs and metrics.
func WithBackendName(name string) Option {
	return func(f *Factory) {
		if name != "" {
			f.backend = name
		}
	}
}

// WithServiceOptions are applied to the service on every tier.
func WithServiceOptions(opts ...service.Option) Option {
	return func(f *Factory) {
		f.serviceOptions = append(f.serviceOptions, opts...)
	}
}

// WithMemoryOptions configure the fallback in-memory process store.
func WithMemoryOptions(opts ...process.Option) Option {
	return func(f *Factory) {
		f.memoryOptions = append(f.memoryOptions, opts...)
	}
}

// New constructs a Factory.
func New(records RecordsBuilder, durable ProcessesBuilder, opts ...Option) *Factory {
	f := &Factory{
		records: records,
		durable: durable,
		backend: "durable",
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Build tries the durable tier and then the fallback tier.
func (f *Factory) Build(ctx context.Context) (*Result, error) {
	records, recordsErr := f.buildRecords(ctx)
	if recordsErr == nil {
		processes, err := f.buildDurable(ctx)
		if err == nil {
			return f.result(records, processes, TierDurable, f.backend), nil
		}
		f.logger.WarnContext(ctx, "durable process backend unavailable, tracking processes in memory",
			"backend", f.backend,
			"error", err,
		)
		return f.result(records, process.NewInMemory(f.memoryOptions...), TierFallback, BackendMemory), nil
	}

	f.logger.WarnContext(ctx, "durable tier construction failed, trying fallback tier", "error", recordsErr)
	records, err := f.buildRecords(ctx)
	if err != nil {
		f.logger.ErrorContext(ctx, "fallback tier construction failed", "error", err)
		return nil, errors.Join(ErrBackendConstruction, recordsErr, err)
	}
	return f.result(records, process.NewInMemory(f.memoryOptions...), TierFallback, BackendMemory), nil
}

func (f *Factory) result(records service.RecordStore, processes service.ProcessStore, tier, backend string) *Result {
	f.logger.Info("validation backend selected", "tier", tier, "backend", backend)
	if f.metrics != nil {
		f.metrics.SetBackendTier(tier, backend)
	}
	return &Result{
		Service: service.New(records, processes, f.serviceOptions...),
		Tier:    tier,
		Backend: backend,
	}
}

func (f *Factory) buildRecords(ctx context.Context) (service.RecordStore, error) {
	if f.records == nil {
		return nil, fmt.Errorf("no record store configured")
	}
	return guard(ctx, "record store", f.records)
}

func (f *Factory) buildDurable(ctx context.Context) (service.ProcessStore, error) {
	if f.durable == nil {
		return nil, fmt.Errorf("no durable process store configured")
	}
	return guard(ctx, f.backend+" process store", f.durable)
}

// guard runs a builder, converting panics and nil results (typed nil pointers included)
// into errors.
func guard[T any](ctx context.Context, what string, build func(context.Context) (T, error)) (out T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("build %s: panic: %v", what, r)
		}
	}()
	out, err = build(ctx)
	if err != nil {
		return out, fmt.Errorf("build %s: %w", what, err)
	}
	if isNil(out) {
		return out, fmt.Errorf("build %s: builder returned nil", what)
	}
	return out, nil
}

// isNil also catches a nil pointer wrapped in a non-nil interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
