package companies

import "context"

// Service handles company master data.
type Service struct {
	repo RepositoryPort
}

func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a company.
func (s *Service) Create(ctx context.Context, company Company) (Company, error) {
	if company.Name == "" {
		return Company{}, ErrNameRequired
	}
	if err := ValidateSIREN(company.SIREN); err != nil {
		return Company{}, err
	}
	return s.repo.Create(ctx, company)
}

// Get returns one company.
func (s *Service) Get(ctx context.Context, id int64) (Company, error) {
	return s.repo.Get(ctx, id)
}

// List returns all companies.
func (s *Service) List(ctx context.Context) ([]Company, error) {
	return s.repo.List(ctx)
}

// SIREN resolves the identifier used in legal export filenames.
func (s *Service) SIREN(ctx context.Context, id int64) (string, error) {
	company, err := s.repo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return company.SIREN, nil
}
