package payment

import "context"

// Service handles payment ledger operations
type Service struct {
	repo *Repository
}

// NewService creates a new payment service with repository dependency injected
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// List returns the full payment ledger.
func (s *Service) List(ctx context.Context) ([]*Payment, error) {
	return s.repo.List(ctx)
}

// Last returns the most recent payment entry, or nil when none exists.
func (s *Service) Last(ctx context.Context) (*Payment, error) {
	return s.repo.Last(ctx)
}

// Create records a new payment entry.
func (s *Service) Create(ctx context.Context, req *CreatePaymentRequest) (*Payment, error) {
	return s.repo.Create(ctx, req)
}

// Update edits an existing payment entry.
func (s *Service) Update(ctx context.Context, id string, req *UpdatePaymentRequest) (*Payment, error) {
	return s.repo.Update(ctx, id, req)
}

// Delete removes a payment entry.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
