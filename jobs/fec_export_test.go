package jobs

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"github.com/facturio/facturio/internal/fec"
)

type stubSource struct {
	docs []fec.SourceDocument
}

func (s stubSource) ListFinalized(ctx context.Context, companyID int64, from, to time.Time) ([]fec.SourceDocument, error) {
	return s.docs, nil
}

type stubDirectory struct{}

func (stubDirectory) SIREN(ctx context.Context, companyID int64) (string, error) {
	return "732829320", nil
}

type stubStore struct {
	puts     map[string]fec.Export
	failures map[string]string
}

func (s *stubStore) Put(ctx context.Context, exportID string, export fec.Export) error {
	s.puts[exportID] = export
	return nil
}

func (s *stubStore) Fail(ctx context.Context, exportID string, reason string) error {
	s.failures[exportID] = reason
	return nil
}

func newStubStore() *stubStore {
	return &stubStore{puts: map[string]fec.Export{}, failures: map[string]string{}}
}

func TestFECExportJobStoresResult(t *testing.T) {
	source := stubSource{docs: []fec.SourceDocument{{
		ID: 1, Kind: fec.KindSale, Number: "FAC-2026-000001",
		IssueDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		SubTotal:  100, TaxAmount: 20, Total: 120,
		ClientID: "CLI-1", ClientName: "Alpha SARL",
	}}}
	service := fec.NewService(source, stubDirectory{}, nil, fec.EncodingUTF8)
	store := newStubStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	job := NewFECExportJob(service, store, logger)

	task, err := NewFECExportTask(FECExportPayload{ExportID: "run-1", CompanyID: 1, Year: 2026})
	require.NoError(t, err)

	require.NoError(t, job.Handle(context.Background(), task))
	require.Len(t, store.puts, 1)
	require.Empty(t, store.failures)

	stored := store.puts["run-1"]
	require.Equal(t, "732829320FEC20261231.txt", stored.Filename)
	require.Equal(t, 1, stored.Documents)
	require.Equal(t, 3, stored.Lines)
}

func TestFECExportJobSkipsRetryOnBadData(t *testing.T) {
	source := stubSource{docs: []fec.SourceDocument{{
		ID: 1, Kind: fec.KindSale, Number: "FAC-2026-000001",
		IssueDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		SubTotal:  100, TaxAmount: 20, Total: 120,
		// client fields missing: data integrity defect
	}}}
	service := fec.NewService(source, stubDirectory{}, nil, fec.EncodingUTF8)
	store := newStubStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	job := NewFECExportJob(service, store, logger)

	task, err := NewFECExportTask(FECExportPayload{ExportID: "run-1", CompanyID: 1, Year: 2026})
	require.NoError(t, err)

	err = job.Handle(context.Background(), task)
	require.ErrorIs(t, err, asynq.SkipRetry)
	require.Empty(t, store.puts)

	// The failure is recorded under the run id so the download endpoint can
	// surface it instead of reporting pending forever.
	require.Contains(t, store.failures["run-1"], "client")
}
