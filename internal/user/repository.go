package user

import (
	"context"
	"fmt"

	"github.com/mbms-project/mbms-gateway/internal/store"
)

// authReply is the store's `{user, token}` envelope for login and register.
type authReply struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// Repository speaks to the store's user endpoints
type Repository struct {
	client *store.Client
}

// NewRepository creates a new user repository with the store client injected
func NewRepository(client *store.Client) *Repository {
	return &Repository{client: client}
}

// Login exchanges credentials for the user record and a bearer token.
func (r *Repository) Login(ctx context.Context, req *LoginRequest) (*User, string, error) {
	var reply authReply
	if err := r.client.Post(ctx, "/users/login", req, &reply); err != nil {
		return nil, "", fmt.Errorf("failed to log in: %w", err)
	}
	return reply.User, reply.Token, nil
}

// Register creates a new account and returns it with a bearer token.
func (r *Repository) Register(ctx context.Context, req *RegisterRequest) (*User, string, error) {
	var reply authReply
	if err := r.client.Post(ctx, "/users/register", req, &reply); err != nil {
		return nil, "", fmt.Errorf("failed to register: %w", err)
	}
	return reply.User, reply.Token, nil
}
