package payment

import (
	"context"
	"fmt"

	"github.com/mbms-project/mbms-gateway/internal/store"
)

// Repository speaks to the store's payment endpoints. Listing and the
// last-payment read are served to anonymous callers as well; the store
// kept those open in its historical variant.
type Repository struct {
	client *store.Client
}

// NewRepository creates a new payment repository with the store client injected
func NewRepository(client *store.Client) *Repository {
	return &Repository{client: client}
}

// List fetches the full payment ledger.
func (r *Repository) List(ctx context.Context) ([]*Payment, error) {
	var payments []*Payment
	if err := r.client.Get(ctx, "/payments", &payments); err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// Last fetches the most recent payment entry, or nil when the ledger is
// empty.
func (r *Repository) Last(ctx context.Context) (*Payment, error) {
	last := &Payment{}
	if err := r.client.Get(ctx, "/payments/last", last); err != nil {
		return nil, fmt.Errorf("failed to get last payment: %w", err)
	}
	if last.ID == "" {
		return nil, nil
	}
	return last, nil
}

// Create records a new payment entry.
func (r *Repository) Create(ctx context.Context, req *CreatePaymentRequest) (*Payment, error) {
	created := &Payment{}
	if err := r.client.Post(ctx, "/payments", req, created); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	return created, nil
}

// Update edits an existing payment entry.
func (r *Repository) Update(ctx context.Context, id string, req *UpdatePaymentRequest) (*Payment, error) {
	updated := &Payment{}
	if err := r.client.Put(ctx, "/payments/"+id, req, updated); err != nil {
		return nil, fmt.Errorf("failed to update payment %s: %w", id, err)
	}
	return updated, nil
}

// Delete removes a payment entry.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, "/payments/"+id); err != nil {
		return fmt.Errorf("failed to delete payment %s: %w", id, err)
	}
	return nil
}
