package fec

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memoryExportStore struct {
	statuses map[string]ExportStatus
}

func (s *memoryExportStore) MarkPending(ctx context.Context, exportID string) error {
	s.statuses[exportID] = ExportStatus{State: ExportStatePending}
	return nil
}

func (s *memoryExportStore) Get(ctx context.Context, exportID string) (ExportStatus, error) {
	return s.statuses[exportID], nil
}

type enqueuedExport struct {
	exportID  string
	companyID int64
	year      int
}

type memoryQueue struct {
	enqueued []enqueuedExport
}

func (q *memoryQueue) EnqueueExport(ctx context.Context, exportID string, companyID int64, year int) error {
	q.enqueued = append(q.enqueued, enqueuedExport{exportID: exportID, companyID: companyID, year: year})
	return nil
}

func newTestRouter(t *testing.T) (*chi.Mux, *memoryQueue, *memoryExportStore) {
	t.Helper()
	svc, _, _ := exportFixture()
	queue := &memoryQueue{}
	store := &memoryExportStore{statuses: map[string]ExportStatus{}}
	handler := NewHandler(testLogger(), svc, queue, store)

	r := chi.NewRouter()
	r.Route("/exports", func(r chi.Router) {
		handler.MountRoutes(r)
	})
	return r, queue, store
}

func TestExportEndpoint(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/exports/fec?company=1&year=2026", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Equal(t, `attachment; filename="732829320FEC20261231.txt"`, rec.Header().Get("Content-Disposition"))
	require.True(t, strings.HasPrefix(rec.Body.String(), headerRow+"\r\n"))
}

func TestExportEndpointRejectsMissingYear(t *testing.T) {
	router, _, _ := newTestRouter(t)

	for _, target := range []string{
		"/exports/fec?company=1",
		"/exports/fec?company=1&year=banana",
		"/exports/fec?company=1&year=26",
		"/exports/fec?year=2026",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestExportEndpointUnknownCompany(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/exports/fec?company=77&year=2026", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEnqueueExportEndpoint(t *testing.T) {
	router, queue, store := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/exports/fec/async?company=1&year=2026", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)

	var body struct {
		ExportID  string `json:"export_id"`
		CompanyID int64  `json:"company_id"`
		Year      int    `json:"year"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.ExportID)
	require.Equal(t, int64(1), body.CompanyID)
	require.Equal(t, 2026, body.Year)
	require.Equal(t, "/exports/fec/async/"+body.ExportID, rec.Header().Get("Location"))

	// The run is pending and queued under the id the client got back.
	require.Len(t, queue.enqueued, 1)
	require.Equal(t, enqueuedExport{exportID: body.ExportID, companyID: 1, year: 2026}, queue.enqueued[0])
	require.Equal(t, ExportStatePending, store.statuses[body.ExportID].State)
}

func TestDownloadExportEndpointUnknownID(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/exports/fec/async/no-such-run", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDownloadExportEndpointPending(t *testing.T) {
	router, _, _ := newTestRouter(t)

	enqueue := httptest.NewRequest(http.MethodPost, "/exports/fec/async?company=1&year=2026", nil)
	enqueueRec := httptest.NewRecorder()
	router.ServeHTTP(enqueueRec, enqueue)
	require.Equal(t, http.StatusAccepted, enqueueRec.Code)

	req := httptest.NewRequest(http.MethodGet, enqueueRec.Header().Get("Location"), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestDownloadExportEndpointReady(t *testing.T) {
	router, _, store := newTestRouter(t)
	store.statuses["run-1"] = ExportStatus{
		State: ExportStateReady,
		Export: Export{
			Filename: "732829320FEC20261231.txt",
			Content:  []byte(headerRow + "\r\n"),
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/exports/fec/async/run-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `attachment; filename="732829320FEC20261231.txt"`, rec.Header().Get("Content-Disposition"))
	require.Equal(t, headerRow+"\r\n", rec.Body.String())
}

func TestDownloadExportEndpointFailed(t *testing.T) {
	router, _, store := newTestRouter(t)
	store.statuses["run-2"] = ExportStatus{
		State:  ExportStateFailed,
		Reason: "fec: document 2: missing client name",
	}

	req := httptest.NewRequest(http.MethodGet, "/exports/fec/async/run-2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), "missing client name")
}
