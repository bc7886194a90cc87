package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/facturio/facturio/internal/fec"
)

// ExportStorePort records the outcome of a run under its id.
type ExportStorePort interface {
	Put(ctx context.Context, exportID string, export fec.Export) error
	Fail(ctx context.Context, exportID string, reason string) error
}

// FECExportJob runs queued export generations in the worker process.
type FECExportJob struct {
	service *fec.Service
	store   ExportStorePort
	logger  *slog.Logger
}

func NewFECExportJob(service *fec.Service, store ExportStorePort, logger *slog.Logger) *FECExportJob {
	return &FECExportJob{service: service, store: store, logger: logger}
}

// Handle processes one TaskTypeFECExport task. Integrity failures are not
// retried: the data will not fix itself.
func (j *FECExportJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload FECExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	export, err := j.service.Generate(ctx, payload.CompanyID, payload.Year)
	if err != nil {
		var integrity *fec.IntegrityError
		if errors.As(err, &integrity) {
			j.logger.Error("fec export aborted",
				slog.String("export_id", payload.ExportID),
				slog.Int64("company_id", payload.CompanyID),
				slog.Int("year", payload.Year),
				slog.Any("error", err))
			if err := j.store.Fail(ctx, payload.ExportID, integrity.Error()); err != nil {
				j.logger.Error("record fec export failure", slog.Any("error", err))
			}
			return asynq.SkipRetry
		}
		return err
	}
	if err := j.store.Put(ctx, payload.ExportID, export); err != nil {
		return err
	}
	j.logger.Info("fec export stored",
		slog.String("export_id", payload.ExportID),
		slog.Int64("company_id", payload.CompanyID),
		slog.Int("year", payload.Year),
		slog.Int("documents", export.Documents),
		slog.Int("lines", export.Lines))
	return nil
}
