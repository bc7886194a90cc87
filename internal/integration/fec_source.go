// Package integration adapts domain services to the ports other domains
// consume, keeping the domains free of imports on one another.
package integration

import (
	"context"
	"errors"
	"time"

	"github.com/facturio/facturio/internal/fec"
	"github.com/facturio/facturio/internal/invoicing"
	"github.com/facturio/facturio/internal/masterdata/companies"
)

// DocumentSource exposes finalized invoicing documents to the export engine.
type DocumentSource struct {
	invoices *invoicing.Service
}

func NewDocumentSource(invoices *invoicing.Service) DocumentSource {
	return DocumentSource{invoices: invoices}
}

// ListFinalized maps invoicing documents into the export engine's view.
func (s DocumentSource) ListFinalized(ctx context.Context, companyID int64, from, to time.Time) ([]fec.SourceDocument, error) {
	docs, err := s.invoices.ListFinalized(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]fec.SourceDocument, 0, len(docs))
	for _, doc := range docs {
		out = append(out, fec.SourceDocument{
			ID:         doc.ID,
			Kind:       fec.DocumentKind(doc.Kind),
			Number:     doc.Number,
			IssueDate:  doc.IssueDate,
			CreatedAt:  doc.CreatedAt,
			SubTotal:   doc.SubTotal,
			TaxAmount:  doc.TaxAmount,
			Total:      doc.Total,
			ClientID:   doc.ClientID,
			ClientName: doc.ClientName,
		})
	}
	return out, nil
}

// CompanyDirectory resolves SIRENs for export filenames.
type CompanyDirectory struct {
	companies *companies.Service
}

func NewCompanyDirectory(service *companies.Service) CompanyDirectory {
	return CompanyDirectory{companies: service}
}

// SIREN translates the master data lookup, mapping the not-found case onto
// the export engine's own sentinel.
func (d CompanyDirectory) SIREN(ctx context.Context, companyID int64) (string, error) {
	siren, err := d.companies.SIREN(ctx, companyID)
	if err != nil {
		if errors.Is(err, companies.ErrNotFound) {
			return "", fec.ErrCompanyNotFound
		}
		return "", err
	}
	return siren, nil
}
