package fec

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func sampleDocument() SourceDocument {
	return SourceDocument{
		ID:         42,
		Kind:       KindSale,
		Number:     "FAC-2026-000007",
		IssueDate:  time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		CreatedAt:  time.Date(2026, 1, 5, 14, 30, 0, 0, time.UTC),
		SubTotal:   100.00,
		TaxAmount:  20.00,
		Total:      120.00,
		ClientID:   "CLI-00042",
		ClientName: "Dupont Conseil",
	}
}

func TestBuildEntrySalePolarity(t *testing.T) {
	lines, err := BuildEntry(sampleDocument(), 1)
	require.NoError(t, err)
	require.Len(t, lines, 3)

	client := lines[0]
	require.Equal(t, "411000", client.AccountCode)
	require.Equal(t, 120.00, client.Debit)
	require.Equal(t, 0.00, client.Credit)

	revenue := lines[1]
	require.Equal(t, "706000", revenue.AccountCode)
	require.Equal(t, 0.00, revenue.Debit)
	require.Equal(t, 100.00, revenue.Credit)

	vat := lines[2]
	require.Equal(t, "445710", vat.AccountCode)
	require.Equal(t, 0.00, vat.Debit)
	require.Equal(t, 20.00, vat.Credit)
}

func TestBuildEntryCreditNotePolarity(t *testing.T) {
	doc := sampleDocument()
	doc.Kind = KindCreditNote
	doc.Number = "AV-2026-000002"

	lines, err := BuildEntry(doc, 1)
	require.NoError(t, err)
	require.Len(t, lines, 3)

	require.Equal(t, 0.00, lines[0].Debit)
	require.Equal(t, 120.00, lines[0].Credit)
	require.Equal(t, 100.00, lines[1].Debit)
	require.Equal(t, 0.00, lines[1].Credit)
	require.Equal(t, 20.00, lines[2].Debit)
	require.Equal(t, 0.00, lines[2].Credit)
}

func TestBuildEntryBalances(t *testing.T) {
	for _, kind := range []DocumentKind{KindSale, KindCreditNote} {
		doc := sampleDocument()
		doc.Kind = kind
		lines, err := BuildEntry(doc, 1)
		require.NoError(t, err)

		var debit, credit float64
		for _, line := range lines {
			debit += line.Debit
			credit += line.Credit
		}
		require.InDelta(t, debit, credit, 0.01)
	}
}

func TestBuildEntryNoTaxYieldsTwoLines(t *testing.T) {
	doc := sampleDocument()
	doc.TaxAmount = 0
	doc.Total = doc.SubTotal

	lines, err := BuildEntry(doc, 1)
	require.NoError(t, err)
	require.Len(t, lines, 2)
}

func TestBuildEntrySharedFields(t *testing.T) {
	doc := sampleDocument()
	lines, err := BuildEntry(doc, 9)
	require.NoError(t, err)

	for _, line := range lines {
		require.Equal(t, "VT", line.JournalCode)
		require.Equal(t, "Journal des Ventes", line.JournalLabel)
		require.Equal(t, 9, line.EntryNumber)
		require.Equal(t, doc.IssueDate, line.EntryDate)
		require.Equal(t, doc.IssueDate, line.PieceDate)
		require.Equal(t, doc.Number, line.PieceRef)
		require.Equal(t, doc.CreatedAt, line.ValidationDate)
	}
	require.Equal(t, "Facture FAC-2026-000007 - Dupont Conseil", lines[0].Label)
	require.Equal(t, "TVA sur Facture FAC-2026-000007", lines[2].Label)
}

func TestBuildEntryTruncatesClientFields(t *testing.T) {
	doc := sampleDocument()
	doc.ClientName = strings.Repeat("é", 45)
	doc.ClientID = "CLIENT-IDENTIFIER-TOO-LONG"

	lines, err := BuildEntry(doc, 1)
	require.NoError(t, err)

	require.Equal(t, strings.Repeat("é", 30), lines[0].AuxAccountLbl)
	require.Equal(t, "CLIENT-IDE", lines[0].AuxAccountCode)
	require.Equal(t, "Facture FAC-2026-000007 - "+strings.Repeat("é", 30), lines[0].Label)
}

func TestBuildEntryRejectsIncompleteDocuments(t *testing.T) {
	cases := map[string]func(*SourceDocument){
		"client name":     func(d *SourceDocument) { d.ClientName = "" },
		"client id":       func(d *SourceDocument) { d.ClientID = "" },
		"document number": func(d *SourceDocument) { d.Number = "" },
		"issue date":      func(d *SourceDocument) { d.IssueDate = time.Time{} },
		"creation date":   func(d *SourceDocument) { d.CreatedAt = time.Time{} },
		"amounts":         func(d *SourceDocument) { d.Total = 0 },
	}
	for field, mutate := range cases {
		doc := sampleDocument()
		mutate(&doc)

		_, err := BuildEntry(doc, 1)
		require.Error(t, err, field)

		var integrity *IntegrityError
		require.ErrorAs(t, err, &integrity)
		require.Equal(t, int64(42), integrity.DocumentID)
		require.Equal(t, field, integrity.Field)
	}
}

func TestBuildEntryRejectsUnbalancedAmounts(t *testing.T) {
	doc := sampleDocument()
	doc.Total = 130.00 // subtotal + tax is 120

	_, err := BuildEntry(doc, 1)
	var integrity *IntegrityError
	require.ErrorAs(t, err, &integrity)
}

func TestAccountForUnknownRolePanics(t *testing.T) {
	require.Panics(t, func() {
		AccountFor(AccountRole("PURCHASES"))
	})
}

func TestSequenceIsGapless(t *testing.T) {
	seq := NewSequence()
	for want := 1; want <= 5; want++ {
		require.Equal(t, want, seq.Next())
	}
	require.Equal(t, 1, NewSequence().Next())
}
