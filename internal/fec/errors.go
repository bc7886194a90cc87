package fec

import (
	"errors"
	"fmt"
)

var (
	// ErrCompanyNotFound indicates the company id resolves to nothing.
	ErrCompanyNotFound = errors.New("fec: company not found")
	// ErrInvalidYear indicates the requested fiscal year is out of range.
	ErrInvalidYear = errors.New("fec: invalid fiscal year")
)

// IntegrityError reports a source document that cannot be exported without
// producing a non-compliant file. The whole run aborts; blanks are never
// substituted.
type IntegrityError struct {
	DocumentID int64
	Field      string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("fec: document %d has no usable %s", e.DocumentID, e.Field)
}

func integrityErr(docID int64, field string) error {
	return &IntegrityError{DocumentID: docID, Field: field}
}
