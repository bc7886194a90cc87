package companies

import "errors"

var (
	// ErrNotFound indicates the company does not exist.
	ErrNotFound = errors.New("companies: not found")
	// ErrInvalidSIREN indicates a malformed SIREN.
	ErrInvalidSIREN = errors.New("companies: SIREN must be 9 digits with a valid checksum")
	// ErrNameRequired indicates a missing company name.
	ErrNameRequired = errors.New("companies: name required")
)

// ValidateSIREN checks length, digits, and the Luhn checksum INSEE applies
// to SIREN numbers.
func ValidateSIREN(siren string) error {
	if len(siren) != 9 {
		return ErrInvalidSIREN
	}
	sum := 0
	for i, r := range siren {
		if r < '0' || r > '9' {
			return ErrInvalidSIREN
		}
		d := int(r - '0')
		// Luhn: double every second digit from the right.
		if (9-i)%2 == 0 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	if sum%10 != 0 {
		return ErrInvalidSIREN
	}
	return nil
}
