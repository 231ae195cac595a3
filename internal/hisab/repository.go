package hisab

import (
	"context"
	"fmt"

	"github.com/mbms-project/mbms-gateway/internal/store"
)

// Repository speaks to the store's hisab endpoints
type Repository struct {
	client *store.Client
}

// NewRepository creates a new hisab repository with the store client injected
func NewRepository(client *store.Client) *Repository {
	return &Repository{client: client}
}

// List fetches all settlement batches.
func (r *Repository) List(ctx context.Context) ([]*Hisab, error) {
	var hisabs []*Hisab
	if err := r.client.Get(ctx, "/hisabs", &hisabs); err != nil {
		return nil, fmt.Errorf("failed to list hisabs: %w", err)
	}
	return hisabs, nil
}

// Create persists a new settlement batch.
func (r *Repository) Create(ctx context.Context, req *CreateHisabRequest) (*Hisab, error) {
	created := &Hisab{}
	if err := r.client.Post(ctx, "/hisabs", req, created); err != nil {
		return nil, fmt.Errorf("failed to create hisab: %w", err)
	}
	return created, nil
}

// Update applies a partial update to a settlement batch's lifecycle flags.
func (r *Repository) Update(ctx context.Context, id string, req *UpdateHisabRequest) (*Hisab, error) {
	updated := &Hisab{}
	if err := r.client.Put(ctx, "/hisabs/"+id, req, updated); err != nil {
		return nil, fmt.Errorf("failed to update hisab %s: %w", id, err)
	}
	return updated, nil
}
