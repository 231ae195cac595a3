package card

import "context"

// Service handles card registry operations
type Service struct {
	repo *Repository
}

// NewService creates a new card service with repository dependency injected
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// List returns the card registry.
func (s *Service) List(ctx context.Context) ([]*Card, error) {
	return s.repo.List(ctx)
}

// Create registers a new card.
func (s *Service) Create(ctx context.Context, req *CreateCardRequest) (*Card, error) {
	return s.repo.Create(ctx, req)
}
