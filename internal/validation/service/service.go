// Package service orchestrates validation processes: it accepts requests, records a
// pending process and runs the verification in the background.
package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"recordcheck/internal/validation/compare"
	"recordcheck/internal/validation/metrics"
	"recordcheck/internal/validation/models"
	id "recordcheck/pkg/domain"
	dErrors "recordcheck/pkg/domain-errors"
	"recordcheck/pkg/requestcontext"
)

// RecordStore is the read-only canonical record repository.
// Backend failures surface as absent records.
type RecordStore interface {
	Get(ctx context.Context, subjectID string) (models.CanonicalRecord, bool)
	Exists(ctx context.Context, subjectID string) bool
	ListIDs(ctx context.Context) []string
}

// ProcessStore persists validation processes and enforces their lifecycle.
type ProcessStore interface {
	Create(ctx context.Context, subjectID id.SubjectID, contact *string) (*models.ValidationProcess, error)
	FindByID(ctx context.Context, processID id.ProcessID) (*models.ValidationProcess, error)
	UpdateStatus(ctx context.Context, processID id.ProcessID, status models.Status, outcome models.Outcome) (*models.ValidationProcess, error)
}

const (
	tracerName          = "recordcheck/validation"
	DefaultContactField = "email"
)

// Service is the validation orchestrator.
type Service struct {
	records      RecordStore
	processes    ProcessStore
	comparator   *compare.Comparator
	verifier     Verifier
	scheduler    Scheduler
	logger       *slog.Logger
	metrics      *metrics.Metrics
	tracer       trace.Tracer
	contactField string
	clock        func() time.Time
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithVerifier replaces the default SummaryVerifier.
func WithVerifier(v Verifier) Option {
	return func(s *Service) {
		s.verifier = v
	}
}

// WithScheduler controls how background executions are started.
func WithScheduler(scheduler Scheduler) Option {
	return func(s *Service) {
		if scheduler != nil {
			s.scheduler = scheduler
		}
	}
}

// WithContactField names the record field copied onto new processes.
func WithContactField(field string) Option {
	return func(s *Service) {
		if field != "" {
			s.contactField = field
		}
	}
}

func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// New constructs a Service over the given repositories.
func New(records RecordStore, processes ProcessStore, opts ...Option) *Service {
	s := &Service{
		records:      records,
		processes:    processes,
		comparator:   compare.New(records),
		scheduler:    GoroutineScheduler{},
		logger:       slog.Default(),
		tracer:       otel.Tracer(tracerName),
		contactField: DefaultContactField,
		clock:        func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.verifier == nil {
		s.verifier = NewSummaryVerifier(s.contactField, s.clock)
	}
	return s
}

// InitiateValidation creates a pending process for subjectID and schedules its execution.
// It returns as soon as the process is persisted; the returned snapshot is always pending.
//
// Malformed identifiers are rejected before any store is touched.
func (s *Service) InitiateValidation(ctx context.Context, subjectID string) (*models.ValidationProcess, error) {
	ctx, span := s.tracer.Start(ctx, "validation.initiate")
	defer span.End()

	sid, err := id.ParseSubjectID(subjectID)
	if err != nil {
		s.reject(span, metrics.ReasonInvalidFormat, err)
		return nil, err
	}
	span.SetAttributes(attribute.String("subject_id", sid.String()))

	record, ok := s.records.Get(ctx, sid.String())
	if !ok {
		s.reject(span, metrics.ReasonSubjectNotFound, models.ErrSubjectNotFound)
		return nil, models.ErrSubjectNotFound
	}

	proc, err := s.processes.Create(ctx, sid, record.Contact(s.contactField))
	if err != nil {
		s.reject(span, metrics.ReasonStoreError, err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create validation process")
	}
	span.SetAttributes(attribute.String("process_id", proc.ProcessID.String()))

	// The execution outlives the request: keep its values, drop its cancellation.
	bg := context.WithoutCancel(ctx)
	processID := proc.ProcessID
	s.scheduler.Go(func() {
		s.Execute(bg, processID)
	})

	s.logger.InfoContext(ctx, "validation initiated",
		"process_id", processID,
		"subject_id", sid,
		"request_id", requestcontext.RequestID(ctx),
	)
	if s.metrics != nil {
		s.metrics.IncrementInitiated()
	}
	return proc, nil
}

// GetValidationStatus is a read-through lookup. An unknown or malformed process id is
// reported as absent, never as an error; only store failures are errors.
func (s *Service) GetValidationStatus(ctx context.Context, processID string) (*models.ValidationProcess, bool, error) {
	proc, err := s.processes.FindByID(ctx, id.ProcessID(processID))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, false, nil
		}
		return nil, false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load validation process")
	}
	return proc, true, nil
}

// Compare checks externally extracted fields against the subject's canonical record.
func (s *Service) Compare(ctx context.Context, subjectID string, extracted map[string]any) (*models.ComparisonResult, error) {
	sid, err := id.ParseSubjectID(subjectID)
	if err != nil {
		return nil, err
	}
	result, err := s.comparator.Compare(ctx, sid, extracted)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObserveAnomalies(result.TotalAnomalies)
	}
	return result, nil
}

// ListSubjects returns the ids of every canonical record, in storage order.
func (s *Service) ListSubjects(ctx context.Context) []string {
	return s.records.ListIDs(ctx)
}

func (s *Service) reject(span trace.Span, reason string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, reason)
	if s.metrics != nil {
		s.metrics.IncrementRejected(reason)
	}
}
