package fec

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/facturio/facturio/internal/shared"
)

// DocumentSource supplies the finalized documents of a company for a period,
// filtered to exportable statuses and ordered ascending by document number.
type DocumentSource interface {
	ListFinalized(ctx context.Context, companyID int64, from, to time.Time) ([]SourceDocument, error)
}

// CompanyDirectory resolves the SIREN used in the export filename.
type CompanyDirectory interface {
	SIREN(ctx context.Context, companyID int64) (string, error)
}

// AuditPort records export runs.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service generates FEC exports. It holds no per-run state: every generation
// builds its own sequence, so concurrent calls never interfere.
type Service struct {
	source   DocumentSource
	registry CompanyDirectory
	audit    AuditPort
	encoding Encoding
	group    singleflight.Group
	now      func() time.Time
}

func NewService(source DocumentSource, registry CompanyDirectory, audit AuditPort, encoding Encoding) *Service {
	if encoding == "" {
		encoding = EncodingUTF8
	}
	return &Service{source: source, registry: registry, audit: audit, encoding: encoding, now: time.Now}
}

// WithNow overrides the clock, for tests.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Generate renders the full export for one company and fiscal year.
// Generation is deterministic, so concurrent requests for the same company
// and year are collapsed into a single run.
func (s *Service) Generate(ctx context.Context, companyID int64, year int) (Export, error) {
	key := fmt.Sprintf("%d:%d", companyID, year)
	v, err, _ := s.group.Do(key, func() (any, error) {
		// The run is shared with every caller that joined the flight, so it
		// must not die with the request that happened to start it.
		return s.generate(context.WithoutCancel(ctx), companyID, year)
	})
	if err != nil {
		return Export{}, err
	}
	return v.(Export), nil
}

func (s *Service) generate(ctx context.Context, companyID int64, year int) (Export, error) {
	if year < 1990 || year > 9999 {
		return Export{}, ErrInvalidYear
	}
	siren, err := s.registry.SIREN(ctx, companyID)
	if err != nil {
		return Export{}, err
	}

	var buf bytes.Buffer
	summary, err := s.GenerateTo(ctx, &buf, companyID, year)
	if err != nil {
		return Export{}, err
	}

	export := Export{
		Filename:  fmt.Sprintf("%sFEC%d1231.txt", siren, year),
		Content:   buf.Bytes(),
		Documents: summary.Documents,
		Lines:     summary.Lines,
	}

	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			Action:   "fec.export",
			Entity:   "company",
			EntityID: fmt.Sprintf("%d", companyID),
			Meta: map[string]any{
				"run_id":    uuid.NewString(),
				"year":      year,
				"documents": export.Documents,
				"lines":     export.Lines,
				"filename":  export.Filename,
			},
			At: s.now(),
		})
	}
	return export, nil
}

// GenerateTo streams the export for one company and fiscal year into w,
// document by document, keeping memory bounded by a single entry. On error
// the caller must discard whatever was written; a partial FEC file is not a
// valid legal document.
func (s *Service) GenerateTo(ctx context.Context, w io.Writer, companyID int64, year int) (Summary, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)

	docs, err := s.source.ListFinalized(ctx, companyID, from, to)
	if err != nil {
		return Summary{}, fmt.Errorf("fec: read documents: %w", err)
	}

	fw := NewWriter(w, s.encoding)
	if err := fw.WriteHeader(); err != nil {
		return Summary{}, err
	}

	seq := NewSequence()
	summary := Summary{}
	for _, doc := range docs {
		lines, err := BuildEntry(doc, seq.Next())
		if err != nil {
			return Summary{}, err
		}
		if err := fw.WriteLines(lines); err != nil {
			return Summary{}, err
		}
		summary.Documents++
		summary.Lines += len(lines)
	}
	return summary, nil
}
