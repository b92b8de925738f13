package domain

import (
	"context"
	"errors"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Trainer *Trainer
	Session *Session
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, token string) error
	// Authenticate resolves a session token to its trainer, enforcing
	// expiry and revocation.
	Authenticate(ctx context.Context, token string) (*Trainer, error)
	// EnsureTrainer creates the account when it does not exist yet; used by
	// the bootstrap seed.
	EnsureTrainer(ctx context.Context, name, email, password string) (*Trainer, error)
}

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidSession     = errors.New("invalid_session")
	ErrSessionExpired     = errors.New("session_expired")
	ErrSessionRevoked     = errors.New("session_revoked")
)
