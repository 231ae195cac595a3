package order

import (
	"context"
	"fmt"

	"github.com/mbms-project/mbms-gateway/internal/store"
)

// Repository speaks to the store's order endpoints. The store scopes the
// listing to the requesting user unless the token belongs to an admin.
type Repository struct {
	client *store.Client
}

// NewRepository creates a new order repository with the store client injected
func NewRepository(client *store.Client) *Repository {
	return &Repository{client: client}
}

// List fetches the caller's current view of the order ledger.
func (r *Repository) List(ctx context.Context) ([]*Order, error) {
	var orders []*Order
	if err := r.client.Get(ctx, "/orders", &orders); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// Create records a new order. The store fills in the id, order date and
// computed fields on the returned record.
func (r *Repository) Create(ctx context.Context, req *CreateOrderRequest) (*Order, error) {
	created := &Order{}
	if err := r.client.Post(ctx, "/orders", req, created); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return created, nil
}

// UpdateDelivery moves an order to the target delivery status.
func (r *Repository) UpdateDelivery(ctx context.Context, id string, req *UpdateDeliveryRequest) (*Order, error) {
	updated := &Order{}
	if err := r.client.Put(ctx, "/orders/delivery/"+id, req, updated); err != nil {
		return nil, fmt.Errorf("failed to update delivery for order %s: %w", id, err)
	}
	return updated, nil
}

// UpdateTransfer flips the transfer flag on an order.
func (r *Repository) UpdateTransfer(ctx context.Context, id string, req *UpdateTransferRequest) (*Order, error) {
	updated := &Order{}
	if err := r.client.Put(ctx, "/orders/transfer/"+id, req, updated); err != nil {
		return nil, fmt.Errorf("failed to update transfer for order %s: %w", id, err)
	}
	return updated, nil
}

// Delete removes an order from the store. Hard delete, independent of
// status.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, "/orders/"+id); err != nil {
		return fmt.Errorf("failed to delete order %s: %w", id, err)
	}
	return nil
}
