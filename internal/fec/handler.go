package fec

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/facturio/facturio/internal/platform/httpx"
)

// ExportQueue enqueues an export run for background generation under a
// caller-chosen id.
type ExportQueue interface {
	EnqueueExport(ctx context.Context, exportID string, companyID int64, year int) error
}

// ExportStore tracks background export runs by id.
type ExportStore interface {
	MarkPending(ctx context.Context, exportID string) error
	Get(ctx context.Context, exportID string) (ExportStatus, error)
}

type Handler struct {
	service *Service
	queue   ExportQueue
	store   ExportStore
	logger  *slog.Logger
}

func NewHandler(logger *slog.Logger, service *Service, queue ExportQueue, store ExportStore) *Handler {
	return &Handler{service: service, queue: queue, store: store, logger: logger}
}

// Export handles GET /exports/fec and streams the file back synchronously.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	companyID, year, ok := h.parseParams(w, r)
	if !ok {
		return
	}
	export, err := h.service.Generate(r.Context(), companyID, year)
	if err != nil {
		h.respondExportError(w, err)
		return
	}
	h.serveFile(w, export)
}

// EnqueueExport handles POST /exports/fec/async for volumes too large to
// generate inside one request. The run id is minted here and marked pending
// before the task is queued, so a download attempt can never observe a gap
// between "accepted" and "known".
func (h *Handler) EnqueueExport(w http.ResponseWriter, r *http.Request) {
	if h.queue == nil || h.store == nil {
		httpx.Problem(w, http.StatusNotImplemented, "Not Available", "background exports are not configured")
		return
	}
	companyID, year, ok := h.parseParams(w, r)
	if !ok {
		return
	}
	exportID := uuid.NewString()
	if err := h.store.MarkPending(r.Context(), exportID); err != nil {
		h.logger.Error("mark fec export pending", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	if err := h.queue.EnqueueExport(r.Context(), exportID, companyID, year); err != nil {
		h.logger.Error("enqueue fec export", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/exports/fec/async/%s", exportID))
	httpx.JSON(w, http.StatusAccepted, map[string]any{
		"export_id":  exportID,
		"company_id": companyID,
		"year":       year,
	})
}

// DownloadExport handles GET /exports/fec/async/{exportID}: the file once the
// run is ready, 409 while it is still pending, 404 for an unknown or expired
// id, 422 when the run aborted on bad data.
func (h *Handler) DownloadExport(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		httpx.Problem(w, http.StatusNotImplemented, "Not Available", "background exports are not configured")
		return
	}
	exportID := chi.URLParam(r, "exportID")
	status, err := h.store.Get(r.Context(), exportID)
	if err != nil {
		h.logger.Error("load stored fec export", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	switch status.State {
	case ExportStateReady:
		h.serveFile(w, status.Export)
	case ExportStatePending:
		httpx.Problem(w, http.StatusConflict, "Not Ready", "export is still being generated")
	case ExportStateFailed:
		httpx.Problem(w, http.StatusUnprocessableEntity, "Export Aborted", status.Reason)
	default:
		httpx.Problem(w, http.StatusNotFound, "Not Found", "no export run with this id")
	}
}

// parseParams reads company and year. An absent or malformed year is
// rejected instead of defaulting to the current year: silently exporting the
// wrong fiscal year is worse than a 400.
func (h *Handler) parseParams(w http.ResponseWriter, r *http.Request) (companyID int64, year int, ok bool) {
	companyID, err := strconv.ParseInt(r.URL.Query().Get("company"), 10, 64)
	if err != nil || companyID <= 0 {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "company must be a positive integer")
		return 0, 0, false
	}
	year, err = strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 1990 || year > 9999 {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "year must be a four-digit fiscal year")
		return 0, 0, false
	}
	return companyID, year, true
}

func (h *Handler) serveFile(w http.ResponseWriter, export Export) {
	w.Header().Set("Content-Type", "text/plain; charset="+string(h.service.encoding))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(export.Content); err != nil {
		h.logger.Warn("write fec export", slog.Any("error", err))
	}
}

func (h *Handler) respondExportError(w http.ResponseWriter, err error) {
	var integrity *IntegrityError
	switch {
	case errors.Is(err, ErrCompanyNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrInvalidYear):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.As(err, &integrity):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Export Aborted", integrity.Error())
	default:
		h.logger.Error("generate fec export", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
