package fec

import (
	"fmt"
	"math"
)

const (
	maxClientNameLen = 30
	maxAuxCodeLen    = 10
	balanceTolerance = 0.01
)

// BuildEntry turns one finalized document into its balanced journal lines:
// receivable, revenue, and a VAT line when tax was charged. Credit notes get
// the mirrored debit/credit polarity. Output always balances within 0.01.
func BuildEntry(doc SourceDocument, entryNumber int) ([]JournalLine, error) {
	if err := checkDocument(doc); err != nil {
		return nil, err
	}

	isReversal := doc.Kind == KindCreditNote
	clientName := truncate(doc.ClientName, maxClientNameLen)
	auxCode := truncate(doc.ClientID, maxAuxCodeLen)
	label := fmt.Sprintf("Facture %s - %s", doc.Number, clientName)

	base := JournalLine{
		JournalCode:    salesJournalCode,
		JournalLabel:   salesJournalLabel,
		EntryNumber:    entryNumber,
		EntryDate:      doc.IssueDate,
		PieceRef:       doc.Number,
		PieceDate:      doc.IssueDate,
		Label:          label,
		ValidationDate: doc.CreatedAt,
	}

	receivable := base
	receivable.AccountCode, receivable.AccountLabel = accountPair(RoleClientReceivable)
	receivable.AuxAccountCode = auxCode
	receivable.AuxAccountLbl = clientName
	receivable.Debit, receivable.Credit = polarity(doc.Total, isReversal)

	revenue := base
	revenue.AccountCode, revenue.AccountLabel = accountPair(RoleSalesRevenue)
	revenue.Credit, revenue.Debit = polarity(doc.SubTotal, isReversal)

	lines := []JournalLine{receivable, revenue}

	if doc.TaxAmount > 0 {
		vat := base
		vat.AccountCode, vat.AccountLabel = accountPair(RoleVATCollected)
		vat.Label = fmt.Sprintf("TVA sur Facture %s", doc.Number)
		vat.Credit, vat.Debit = polarity(doc.TaxAmount, isReversal)
		lines = append(lines, vat)
	}

	var debit, credit float64
	for _, line := range lines {
		debit += line.Debit
		credit += line.Credit
	}
	if math.Abs(debit-credit) >= balanceTolerance {
		return nil, integrityErr(doc.ID, "balanced amounts")
	}
	return lines, nil
}

func checkDocument(doc SourceDocument) error {
	switch {
	case doc.Number == "":
		return integrityErr(doc.ID, "document number")
	case doc.ClientName == "":
		return integrityErr(doc.ID, "client name")
	case doc.ClientID == "":
		return integrityErr(doc.ID, "client id")
	case doc.IssueDate.IsZero():
		return integrityErr(doc.ID, "issue date")
	case doc.CreatedAt.IsZero():
		return integrityErr(doc.ID, "creation date")
	case doc.Total <= 0 || doc.SubTotal <= 0 || doc.TaxAmount < 0:
		return integrityErr(doc.ID, "amounts")
	case doc.Kind != KindSale && doc.Kind != KindCreditNote:
		return integrityErr(doc.ID, "document kind")
	}
	return nil
}

// polarity places amount on the debit side for sales and flips it for
// reversals. Callers swap the return order for natural-credit accounts.
func polarity(amount float64, reversal bool) (debit, credit float64) {
	if reversal {
		return 0, amount
	}
	return amount, 0
}

func accountPair(role AccountRole) (code, label string) {
	account := AccountFor(role)
	return account.Code, account.Label
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
