package companies

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateSIREN(t *testing.T) {
	require.NoError(t, ValidateSIREN("732829320"))

	for _, siren := range []string{
		"",
		"73282932",   // too short
		"7328293200", // too long
		"73282932A",  // non-digit
		"732829321",  // bad checksum
		"000000001",  // bad checksum
	} {
		require.ErrorIs(t, ValidateSIREN(siren), ErrInvalidSIREN, siren)
	}
}

type memoryCompanyRepo struct {
	companies map[int64]Company
	nextID    int64
}

func (r *memoryCompanyRepo) Get(ctx context.Context, id int64) (Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return Company{}, ErrNotFound
	}
	return c, nil
}

func (r *memoryCompanyRepo) List(ctx context.Context) ([]Company, error) {
	var out []Company
	for _, c := range r.companies {
		out = append(out, c)
	}
	return out, nil
}

func (r *memoryCompanyRepo) Create(ctx context.Context, company Company) (Company, error) {
	r.nextID++
	company.ID = r.nextID
	r.companies[company.ID] = company
	return company, nil
}

func TestServiceCreateValidates(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&memoryCompanyRepo{companies: map[int64]Company{}})

	_, err := svc.Create(ctx, Company{Name: "", SIREN: "732829320"})
	require.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.Create(ctx, Company{Name: "Alpha SARL", SIREN: "123"})
	require.ErrorIs(t, err, ErrInvalidSIREN)

	created, err := svc.Create(ctx, Company{Name: "Alpha SARL", SIREN: "732829320"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
}

func TestServiceSIREN(t *testing.T) {
	ctx := context.Background()
	repo := &memoryCompanyRepo{companies: map[int64]Company{}}
	svc := NewService(repo)

	created, err := svc.Create(ctx, Company{Name: "Alpha SARL", SIREN: "732829320"})
	require.NoError(t, err)

	siren, err := svc.SIREN(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "732829320", siren)

	_, err = svc.SIREN(ctx, 999)
	require.ErrorIs(t, err, ErrNotFound)
}
