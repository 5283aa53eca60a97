package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"recordcheck/internal/validation/models"
	id "recordcheck/pkg/domain"
	"recordcheck/pkg/platform/sentinel"
	"recordcheck/pkg/requestcontext"
)

// Execute drives one process from pending to a terminal status. It never returns an
// error: every failure, including a panic in the verifier, is recorded on the process.
// A process that disappears mid-flight is abandoned silently.
//
// There is no timeout. An execution that never returns leaves the process in_progress.
func (s *Service) Execute(ctx context.Context, processID id.ProcessID) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "validation.execute",
		trace.WithAttributes(attribute.String("process_id", processID.String())))
	defer span.End()

	logger := s.logger.With(
		"process_id", processID,
		"request_id", requestcontext.RequestID(ctx),
	)

	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "validation execution panicked", "panic", r)
			s.fail(ctx, logger, span, processID, fmt.Sprintf("validation panicked: %v", r), start)
		}
	}()

	if err := s.start(ctx, logger, processID); err != nil {
		if errors.Is(err, models.ErrProcessNotFound) {
			logger.WarnContext(ctx, "validation process vanished before execution")
			return
		}
		// Pending cannot move to failed, so the process stays pending.
		logger.ErrorContext(ctx, "failed to start validation", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "start failed")
		return
	}

	proc, err := s.processes.FindByID(ctx, processID)
	if err != nil {
		if errors.Is(err, models.ErrProcessNotFound) {
			logger.WarnContext(ctx, "validation process vanished during execution")
			return
		}
		s.fail(ctx, logger, span, processID, err.Error(), start)
		return
	}
	logger = logger.With("subject_id", proc.SubjectID)

	record, ok := s.records.Get(ctx, proc.SubjectID.String())
	if !ok {
		s.fail(ctx, logger, span, processID, models.ExecutionMessageSubjectMissing, start)
		return
	}

	result, err := s.verifier.Verify(ctx, proc, record)
	if err != nil {
		s.fail(ctx, logger, span, processID, err.Error(), start)
		return
	}
	if result == nil {
		result = map[string]any{}
	}

	if _, err := s.processes.UpdateStatus(ctx, processID, models.StatusCompleted, models.Outcome{Result: result}); err != nil {
		logger.ErrorContext(ctx, "failed to record validation result", "error", err)
		s.fail(ctx, logger, span, processID, err.Error(), start)
		return
	}
	logger.InfoContext(ctx, "validation completed", "duration_ms", time.Since(start).Milliseconds())
	if s.metrics != nil {
		s.metrics.ObserveExecution(string(models.StatusCompleted), start)
	}
}

// start moves the process to in_progress. A store error is retried once; a missing
// process or a rejected transition is not.
func (s *Service) start(ctx context.Context, logger *slog.Logger, processID id.ProcessID) error {
	_, err := s.processes.UpdateStatus(ctx, processID, models.StatusInProgress, models.Outcome{})
	if err == nil || errors.Is(err, models.ErrProcessNotFound) || errors.Is(err, sentinel.ErrInvalidState) {
		return err
	}
	logger.WarnContext(ctx, "retrying validation start", "error", err)
	_, err = s.processes.UpdateStatus(ctx, processID, models.StatusInProgress, models.Outcome{})
	return err
}

func (s *Service) fail(ctx context.Context, logger *slog.Logger, span trace.Span, processID id.ProcessID, message string, start time.Time) {
	span.SetStatus(codes.Error, message)
	if message == "" {
		message = "validation failed"
	}
	if _, err := s.processes.UpdateStatus(ctx, processID, models.StatusFailed, models.Outcome{ErrorMessage: message}); err != nil {
		logger.ErrorContext(ctx, "failed to record validation failure", "error", err, "reason", message)
		return
	}
	logger.WarnContext(ctx, "validation failed", "reason", message)
	if s.metrics != nil {
		s.metrics.ObserveExecution(string(models.StatusFailed), start)
	}
}
