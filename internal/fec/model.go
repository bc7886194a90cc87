package fec

import "time"

// DocumentKind distinguishes sales invoices from their reversals.
type DocumentKind string

const (
	KindSale       DocumentKind = "SALE"
	KindCreditNote DocumentKind = "CREDIT_NOTE"
)

// SourceDocument is a finalized, immutable billing document as seen by the
// export engine. Amounts are assumed already computed and rounded upstream.
type SourceDocument struct {
	ID         int64
	Kind       DocumentKind
	Number     string
	IssueDate  time.Time
	CreatedAt  time.Time
	SubTotal   float64
	TaxAmount  float64
	Total      float64
	ClientID   string
	ClientName string
}

// JournalLine is one row of the sales journal in FEC column order.
type JournalLine struct {
	JournalCode    string
	JournalLabel   string
	EntryNumber    int
	EntryDate      time.Time
	AccountCode    string
	AccountLabel   string
	AuxAccountCode string
	AuxAccountLbl  string
	PieceRef       string
	PieceDate      time.Time
	Label          string
	Debit          float64
	Credit         float64
	ValidationDate time.Time
}

// Export is a fully rendered FEC file plus its suggested filename.
type Export struct {
	Filename  string
	Content   []byte
	Documents int
	Lines     int
}

// Summary counts what a generation run produced.
type Summary struct {
	Documents int
	Lines     int
}

// ExportState tracks a background export run from enqueue to download.
type ExportState string

const (
	// ExportStateUnknown means no run exists under the id (or it expired).
	ExportStateUnknown ExportState = ""
	ExportStatePending ExportState = "PENDING"
	ExportStateReady   ExportState = "READY"
	ExportStateFailed  ExportState = "FAILED"
)

// ExportStatus is what a download lookup sees for one background run.
// Export is only populated when State is ExportStateReady; Reason only when
// the run failed.
type ExportStatus struct {
	State  ExportState
	Export Export
	Reason string
}

const (
	salesJournalCode  = "VT"
	salesJournalLabel = "Journal des Ventes"
)
