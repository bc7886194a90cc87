package invoicing

import "errors"

var (
	// ErrNotFound indicates the document does not exist.
	ErrNotFound = errors.New("invoicing: document not found")
	// ErrInvalidStatus indicates the transition is not allowed.
	ErrInvalidStatus = errors.New("invoicing: invalid status transition")
	// ErrAmountMismatch indicates subtotal + tax does not equal total.
	ErrAmountMismatch = errors.New("invoicing: subtotal plus tax must equal total")
	// ErrDuplicateNumber indicates a document number collision.
	ErrDuplicateNumber = errors.New("invoicing: duplicate document number")
)
