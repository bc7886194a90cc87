package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/facturio/facturio/internal/fec"
)

// ExportStore tracks background FEC runs in Redis, keyed by run id, from
// pending through ready or failed. Entries expire; a legal export is
// regenerated on demand, never treated as the system of record.
type ExportStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewExportStore(client *redis.Client, ttl time.Duration) *ExportStore {
	return &ExportStore{client: client, ttl: ttl}
}

type storedExport struct {
	State     fec.ExportState `json:"state"`
	Reason    string          `json:"reason,omitempty"`
	Filename  string          `json:"filename,omitempty"`
	Content   []byte          `json:"content,omitempty"`
	Documents int             `json:"documents,omitempty"`
	Lines     int             `json:"lines,omitempty"`
}

func exportKey(exportID string) string {
	return "fec:export:" + exportID
}

func (s *ExportStore) set(ctx context.Context, exportID string, stored storedExport) error {
	payload, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("platform/cache: marshal export: %w", err)
	}
	if err := s.client.Set(ctx, exportKey(exportID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("platform/cache: store export: %w", err)
	}
	return nil
}

// MarkPending registers a run before it is queued, so the download endpoint
// can tell "still generating" from "never existed".
func (s *ExportStore) MarkPending(ctx context.Context, exportID string) error {
	return s.set(ctx, exportID, storedExport{State: fec.ExportStatePending})
}

// Put stores the finished file under the run id.
func (s *ExportStore) Put(ctx context.Context, exportID string, export fec.Export) error {
	return s.set(ctx, exportID, storedExport{
		State:     fec.ExportStateReady,
		Filename:  export.Filename,
		Content:   export.Content,
		Documents: export.Documents,
		Lines:     export.Lines,
	})
}

// Fail records that the run aborted, with the reason shown to the caller.
func (s *ExportStore) Fail(ctx context.Context, exportID string, reason string) error {
	return s.set(ctx, exportID, storedExport{State: fec.ExportStateFailed, Reason: reason})
}

// Get reports the state of a run. An absent or expired id comes back as
// ExportStateUnknown with no error.
func (s *ExportStore) Get(ctx context.Context, exportID string) (fec.ExportStatus, error) {
	payload, err := s.client.Get(ctx, exportKey(exportID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return fec.ExportStatus{State: fec.ExportStateUnknown}, nil
		}
		return fec.ExportStatus{}, fmt.Errorf("platform/cache: load export: %w", err)
	}
	var stored storedExport
	if err := json.Unmarshal(payload, &stored); err != nil {
		return fec.ExportStatus{}, fmt.Errorf("platform/cache: decode export: %w", err)
	}
	return fec.ExportStatus{
		State:  stored.State,
		Reason: stored.Reason,
		Export: fec.Export{
			Filename:  stored.Filename,
			Content:   stored.Content,
			Documents: stored.Documents,
			Lines:     stored.Lines,
		},
	}, nil
}
