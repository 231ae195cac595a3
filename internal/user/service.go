package user

import (
	"context"
	"errors"

	"github.com/mbms-project/mbms-gateway/internal/store"
)

// Common errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Registrar tracks which bearer tokens have live gateway sessions.
type Registrar interface {
	Put(token string, u *User)
	Drop(token string)
}

// Service handles authentication against the remote store
type Service struct {
	repo     *Repository
	sessions Registrar
}

// NewService creates a new user service with its dependencies injected
func NewService(repo *Repository, sessions Registrar) *Service {
	return &Service{repo: repo, sessions: sessions}
}

// Login authenticates against the store and opens a gateway session keyed
// by the returned token.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*User, string, error) {
	u, token, err := s.repo.Login(ctx, req)
	if err != nil {
		if errors.Is(err, store.ErrUnauthorized) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	s.sessions.Put(token, u)
	return u, token, nil
}

// Register creates an account in the store and opens a gateway session.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*User, string, error) {
	u, token, err := s.repo.Register(ctx, req)
	if err != nil {
		return nil, "", err
	}

	s.sessions.Put(token, u)
	return u, token, nil
}

// Logout drops the gateway session for the given token. The store-issued
// token itself stays valid until it expires upstream.
func (s *Service) Logout(token string) {
	s.sessions.Drop(token)
}
