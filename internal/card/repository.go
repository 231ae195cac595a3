package card

import (
	"context"
	"fmt"

	"github.com/mbms-project/mbms-gateway/internal/store"
)

// Repository speaks to the store's card endpoints
type Repository struct {
	client *store.Client
}

// NewRepository creates a new card repository with the store client injected
func NewRepository(client *store.Client) *Repository {
	return &Repository{client: client}
}

// List fetches the card registry.
func (r *Repository) List(ctx context.Context) ([]*Card, error) {
	var cards []*Card
	if err := r.client.Get(ctx, "/cards", &cards); err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

// Create registers a new card.
func (r *Repository) Create(ctx context.Context, req *CreateCardRequest) (*Card, error) {
	created := &Card{}
	if err := r.client.Post(ctx, "/cards", req, created); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}
	return created, nil
}
