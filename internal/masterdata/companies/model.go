package companies

import "time"

// Company holds the master data needed by billing and legal exports. SIREN
// is the 9-digit INSEE business identifier stamped into FEC filenames.
type Company struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	SIREN     string    `json:"siren"`
	VATNumber string    `json:"vat_number"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
