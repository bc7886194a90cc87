package invoicing

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// CreateDocumentInput carries the fields required to open a draft document.
// Amounts are computed upstream and arrive already rounded.
type CreateDocumentInput struct {
	CompanyID  int64        `json:"company_id" validate:"required,gt=0"`
	Kind       DocumentKind `json:"kind" validate:"required,oneof=SALE CREDIT_NOTE"`
	IssueDate  time.Time    `json:"issue_date" validate:"required"`
	SubTotal   float64      `json:"sub_total" validate:"gt=0"`
	TaxAmount  float64      `json:"tax_amount" validate:"gte=0"`
	Total      float64      `json:"total" validate:"gt=0"`
	ClientID   string       `json:"client_id" validate:"required,max=40"`
	ClientName string       `json:"client_name" validate:"required,max=120"`
}

// Validate checks structural constraints plus amount coherence.
func (in CreateDocumentInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return err
	}
	if diff := in.SubTotal + in.TaxAmount - in.Total; diff > 0.01 || diff < -0.01 {
		return ErrAmountMismatch
	}
	return nil
}

// FinalizeInput moves a draft to VALIDATED and assigns its number.
type FinalizeInput struct {
	DocumentID int64
	ActorID    int64
}

// MarkPaidInput records settlement of a validated document.
type MarkPaidInput struct {
	DocumentID int64
	ActorID    int64
}

// ListRequest filters the document listing.
type ListRequest struct {
	CompanyID int64
	Status    DocumentStatus
	Kind      DocumentKind
}
