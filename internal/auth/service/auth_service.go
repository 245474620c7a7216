package service

import (
	"context"

	"github.com/projtrack-app/projtrack-backend/internal/auth/domain"
	"github.com/projtrack-app/projtrack-backend/internal/auth/password"
)

// CredentialStore is the slice of the user repository the auth flow needs.
type CredentialStore interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (string, error)
}

// AuthService handles registration and credential verification
type AuthService struct {
	users CredentialStore
}

func NewAuthService(users CredentialStore) *AuthService {
	return &AuthService{users: users}
}

// RegisterRequest carries the registration form fields
type RegisterRequest struct {
	Username string
	Email    string
	Password string
}

// Register hashes the password and creates the user record.
// Duplicate usernames/emails propagate as domain errors.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*domain.User, error) {
	digest, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: digest,
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies the credentials and returns the caller identity.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, plain string) (*domain.Identity, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err == domain.ErrUserNotFound {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !password.Verify(plain, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return &domain.Identity{UserID: user.ID, Username: user.Username}, nil
}
