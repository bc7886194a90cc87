package invoicing

import (
	"context"
	"fmt"
	"time"

	"github.com/facturio/facturio/internal/shared"
)

// RepositoryPort defines data access for billing documents.
type RepositoryPort interface {
	CreateDocument(ctx context.Context, input CreateDocumentInput) (*Document, error)
	GetDocument(ctx context.Context, id int64) (*Document, error)
	ListDocuments(ctx context.Context, req ListRequest) ([]Document, error)
	ListFinalized(ctx context.Context, companyID int64, from, to time.Time) ([]Document, error)
	FinalizeDocument(ctx context.Context, id int64, kind DocumentKind, year int) (string, error)
	MarkPaid(ctx context.Context, id int64) error
}

// AuditPort records document lifecycle events.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service handles billing document business logic.
type Service struct {
	repo  RepositoryPort
	audit AuditPort
	now   func() time.Time
}

func NewService(repo RepositoryPort, audit AuditPort) *Service {
	return &Service{repo: repo, audit: audit, now: time.Now}
}

// WithNow overrides the clock, for tests.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// CreateDocument opens a draft invoice or credit note.
func (s *Service) CreateDocument(ctx context.Context, input CreateDocumentInput) (*Document, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return s.repo.CreateDocument(ctx, input)
}

// FinalizeDocument assigns a sequential number and locks the document.
// Only drafts can be finalized; everything later is immutable.
func (s *Service) FinalizeDocument(ctx context.Context, input FinalizeInput) (*Document, error) {
	doc, err := s.repo.GetDocument(ctx, input.DocumentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrNotFound
	}
	if doc.Status != StatusDraft {
		return nil, ErrInvalidStatus
	}
	number, err := s.repo.FinalizeDocument(ctx, doc.ID, doc.Kind, doc.IssueDate.Year())
	if err != nil {
		return nil, err
	}
	doc.Number = number
	doc.Status = StatusValidated
	s.recordAudit(ctx, input.ActorID, "document.finalize", doc)
	return doc, nil
}

// MarkPaid records settlement. Paid documents stay exportable; the status
// only matters for receivables follow-up.
func (s *Service) MarkPaid(ctx context.Context, input MarkPaidInput) (*Document, error) {
	doc, err := s.repo.GetDocument(ctx, input.DocumentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrNotFound
	}
	if doc.Status != StatusValidated {
		return nil, ErrInvalidStatus
	}
	if err := s.repo.MarkPaid(ctx, doc.ID); err != nil {
		return nil, err
	}
	doc.Status = StatusPaid
	s.recordAudit(ctx, input.ActorID, "document.paid", doc)
	return doc, nil
}

// GetDocument returns one document.
func (s *Service) GetDocument(ctx context.Context, id int64) (*Document, error) {
	doc, err := s.repo.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrNotFound
	}
	return doc, nil
}

// ListDocuments returns documents matching the filter.
func (s *Service) ListDocuments(ctx context.Context, req ListRequest) ([]Document, error) {
	return s.repo.ListDocuments(ctx, req)
}

// ListFinalized returns the exportable documents of a company for a period,
// ordered ascending by document number.
func (s *Service) ListFinalized(ctx context.Context, companyID int64, from, to time.Time) ([]Document, error) {
	return s.repo.ListFinalized(ctx, companyID, from, to)
}

func (s *Service) recordAudit(ctx context.Context, actorID int64, action string, doc *Document) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "document",
		EntityID: fmt.Sprintf("%d", doc.ID),
		Meta: map[string]any{
			"number": doc.Number,
			"kind":   string(doc.Kind),
			"total":  doc.Total,
		},
		At: s.now(),
	})
}
