package order

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrUnknownStatus = errors.New("unknown delivery status")
)

// Service handles order ledger operations
type Service struct {
	repo *Repository
}

// NewService creates a new order service with repository dependency injected
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// List returns the caller's current view of the order ledger.
func (s *Service) List(ctx context.Context) ([]*Order, error) {
	return s.repo.List(ctx)
}

// Create records a new order.
func (s *Service) Create(ctx context.Context, req *CreateOrderRequest) (*Order, error) {
	return s.repo.Create(ctx, req)
}

// UpdateDelivery moves an order to the target delivery status. The
// external order id is only forwarded when the target status is Delivered;
// that is the moment the storefront's id becomes known.
func (s *Service) UpdateDelivery(ctx context.Context, id string, req *UpdateDeliveryRequest) (*Order, error) {
	if !ValidStatus(req.Delivery) {
		return nil, ErrUnknownStatus
	}
	if req.Delivery != DeliveryDelivered {
		req.OrderID = ""
	}
	return s.repo.UpdateDelivery(ctx, id, req)
}

// UpdateTransfer flips the transfer flag on an order.
func (s *Service) UpdateTransfer(ctx context.Context, id string, req *UpdateTransferRequest) (*Order, error) {
	return s.repo.UpdateTransfer(ctx, id, req)
}

// Delete removes an order. The handler restricts this to admins.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
