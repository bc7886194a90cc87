package invoicing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/facturio/facturio/internal/platform/db"
)

// Repository provides PostgreSQL backed persistence for billing documents.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const documentColumns = `id, company_id, kind, number, status, issue_date,
	sub_total, tax_amount, total, client_id, client_name, created_at, updated_at`

// CreateDocument inserts a draft document.
func (r *Repository) CreateDocument(ctx context.Context, input CreateDocumentInput) (*Document, error) {
	query := `
		INSERT INTO documents (
			company_id, kind, status, issue_date,
			sub_total, tax_amount, total, client_id, client_name,
			created_at, updated_at
		) VALUES ($1, $2, 'DRAFT', $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	var doc Document
	err := r.pool.QueryRow(ctx, query,
		input.CompanyID,
		input.Kind,
		input.IssueDate,
		input.SubTotal,
		input.TaxAmount,
		input.Total,
		input.ClientID,
		input.ClientName,
	).Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return nil, err
	}

	doc.CompanyID = input.CompanyID
	doc.Kind = input.Kind
	doc.Status = StatusDraft
	doc.IssueDate = input.IssueDate
	doc.SubTotal = input.SubTotal
	doc.TaxAmount = input.TaxAmount
	doc.Total = input.Total
	doc.ClientID = input.ClientID
	doc.ClientName = input.ClientName
	return &doc, nil
}

// GetDocument retrieves a document by id; nil when absent.
func (r *Repository) GetDocument(ctx context.Context, id int64) (*Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	doc, err := scanDocument(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return doc, nil
}

// ListDocuments lists documents with optional status/kind filters.
func (r *Repository) ListDocuments(ctx context.Context, req ListRequest) ([]Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE company_id = $1`
	args := []any{req.CompanyID}
	if req.Status != "" {
		args = append(args, req.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if req.Kind != "" {
		args = append(args, req.Kind)
		query += fmt.Sprintf(" AND kind = $%d", len(args))
	}
	query += " ORDER BY id DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDocuments(rows)
}

// ListFinalized returns VALIDATED and PAID documents of a company issued in
// the period, ordered ascending by document number. The ordering feeds the
// journal export and must stay stable.
func (r *Repository) ListFinalized(ctx context.Context, companyID int64, from, to time.Time) ([]Document, error) {
	query := `SELECT ` + documentColumns + `
		FROM documents
		WHERE company_id = $1
		  AND status IN ('VALIDATED', 'PAID')
		  AND issue_date BETWEEN $2 AND $3
		ORDER BY number ASC`

	rows, err := r.pool.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDocuments(rows)
}

// FinalizeDocument allocates the next number for the kind and year and flips
// the status, all in one transaction so a concurrent finalize can neither
// skip nor reuse a number.
func (r *Repository) FinalizeDocument(ctx context.Context, id int64, kind DocumentKind, year int) (string, error) {
	var number string
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var err error
		number, err = generateNumber(ctx, tx, kind, year)
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx,
			`UPDATE documents SET number = $2, status = 'VALIDATED', updated_at = NOW()
			 WHERE id = $1 AND status = 'DRAFT'`, id, number)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateNumber
			}
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrInvalidStatus
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return number, nil
}

// MarkPaid records settlement of a validated document.
func (r *Repository) MarkPaid(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE documents SET status = 'PAID', updated_at = NOW()
		 WHERE id = $1 AND status = 'VALIDATED'`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidStatus
	}
	return nil
}

// generateNumber allocates the next document number for a kind and year.
// FAC-YYYY-NNNNNN for invoices, AV-YYYY-NNNNNN for credit notes; the zero
// padding keeps lexicographic and chronological order aligned.
func generateNumber(ctx context.Context, tx pgx.Tx, kind DocumentKind, year int) (string, error) {
	prefix := "FAC"
	if kind == KindCreditNote {
		prefix = "AV"
	}
	var counter int64
	err := tx.QueryRow(ctx, `
		INSERT INTO document_counters (prefix, year, counter)
		VALUES ($1, $2, 1)
		ON CONFLICT (prefix, year)
		DO UPDATE SET counter = document_counters.counter + 1
		RETURNING counter`, prefix, year).Scan(&counter)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d-%06d", prefix, year, counter), nil
}

func scanDocument(row pgx.Row) (*Document, error) {
	var doc Document
	var number *string
	err := row.Scan(
		&doc.ID, &doc.CompanyID, &doc.Kind, &number, &doc.Status, &doc.IssueDate,
		&doc.SubTotal, &doc.TaxAmount, &doc.Total, &doc.ClientID, &doc.ClientName,
		&doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if number != nil {
		doc.Number = *number
	}
	return &doc, nil
}

func collectDocuments(rows pgx.Rows) ([]Document, error) {
	var docs []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
