package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"recordcheck/internal/validation/models"
	dErrors "recordcheck/pkg/domain-errors"
	"recordcheck/pkg/platform/httputil"
	"recordcheck/pkg/requestcontext"
)

// Service defines the validation operations exposed over HTTP.
type Service interface {
	InitiateValidation(ctx context.Context, subjectID string) (*models.ValidationProcess, error)
	GetValidationStatus(ctx context.Context, processID string) (*models.ValidationProcess, bool, error)
	Compare(ctx context.Context, subjectID string, extracted map[string]any) (*models.ComparisonResult, error)
	ListSubjects(ctx context.Context) []string
}

// Handler wires validation endpoints to the validation service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a validation handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts validation endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/validate", h.HandleInitiate)
		r.Get("/validate/{process_id}", h.HandleStatus)
		r.Post("/compare/{subject_id}", h.HandleCompare)
		r.Get("/records", h.HandleListRecords)
	})
}

// HandleInitiate handles POST /api/validate.
func (h *Handler) HandleInitiate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[ValidateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	proc, err := h.service.InitiateValidation(ctx, *req.SubjectID)
	if err != nil {
		level := slog.LevelWarn
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			level = slog.LevelError
		}
		h.logger.Log(ctx, level, "validation initiation rejected",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "validation accepted",
		"request_id", requestID,
		"process_id", proc.ProcessID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusAccepted, FromProcess(proc, initiatedMessage))
}

// HandleStatus handles GET /api/validate/{process_id}.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	processID := chi.URLParam(r, "process_id")

	proc, found, err := h.service.GetValidationStatus(ctx, processID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load validation status",
			"request_id", requestcontext.RequestID(ctx),
			"process_id", processID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	if !found {
		httputil.WriteError(w, models.ErrProcessNotFound)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromProcess(proc, proc.Status.Message(proc.ErrorMessage)))
}

// HandleCompare handles POST /api/compare/{subject_id}. The body is the extracted field map.
func (h *Handler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	extracted, ok := httputil.DecodeJSON[map[string]any](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if *extracted == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "extracted fields must be a JSON object"))
		return
	}

	result, err := h.service.Compare(ctx, chi.URLParam(r, "subject_id"), *extracted)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleListRecords handles GET /api/records.
func (h *Handler) HandleListRecords(w http.ResponseWriter, r *http.Request) {
	ids := h.service.ListSubjects(r.Context())
	httputil.WriteJSON(w, http.StatusOK, SubjectsResponse{SubjectIDs: ids, Count: len(ids)})
}
