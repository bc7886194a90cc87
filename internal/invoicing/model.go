package invoicing

import "time"

// DocumentKind separates invoices from credit notes.
type DocumentKind string

const (
	KindInvoice    DocumentKind = "SALE"
	KindCreditNote DocumentKind = "CREDIT_NOTE"
)

// DocumentStatus enumerates the billing document lifecycle.
type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "DRAFT"
	StatusValidated DocumentStatus = "VALIDATED"
	StatusPaid      DocumentStatus = "PAID"
	StatusCancelled DocumentStatus = "CANCELLED"
)

// Document is a sales invoice or credit note. Once finalized (VALIDATED or
// later) it is immutable: amounts and identity fields never change again.
type Document struct {
	ID         int64
	CompanyID  int64
	Kind       DocumentKind
	Number     string
	Status     DocumentStatus
	IssueDate  time.Time
	SubTotal   float64
	TaxAmount  float64
	Total      float64
	ClientID   string
	ClientName string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Finalized reports whether the document has entered the immutable part of
// its lifecycle and is eligible for journal export.
func (d Document) Finalized() bool {
	return d.Status == StatusValidated || d.Status == StatusPaid
}
