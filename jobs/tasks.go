package jobs

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeFECExport generates a yearly FEC file for one company.
	TaskTypeFECExport = "fec:export"
)

// FECExportPayload identifies one export run. ExportID is minted by the HTTP
// layer before enqueueing and is the key the result is stored and fetched
// under.
type FECExportPayload struct {
	ExportID  string `json:"export_id"`
	CompanyID int64  `json:"company_id"`
	Year      int    `json:"year"`
}

// NewFECExportTask constructs an Asynq task for a company and fiscal year.
func NewFECExportTask(payload FECExportPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeFECExport, data), nil
}

// Enqueuer submits export tasks from the HTTP layer.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(client *asynq.Client) *Enqueuer {
	return &Enqueuer{client: client}
}

// EnqueueExport queues an export run under the caller's id.
func (e *Enqueuer) EnqueueExport(ctx context.Context, exportID string, companyID int64, year int) error {
	task, err := NewFECExportTask(FECExportPayload{ExportID: exportID, CompanyID: companyID, Year: year})
	if err != nil {
		return err
	}
	_, err = e.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
	return err
}
