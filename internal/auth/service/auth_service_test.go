package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/projtrack-app/projtrack-backend/internal/auth/domain"
	"github.com/projtrack-app/projtrack-backend/internal/auth/password"
	"github.com/projtrack-app/projtrack-backend/internal/auth/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCredentialStore keeps user records in memory, keyed by username.
type fakeCredentialStore struct {
	users  map[string]*domain.User
	nextID int
}

func newFakeCredentialStore() *fakeCredentialStore {
	return &fakeCredentialStore{users: make(map[string]*domain.User)}
}

func (f *fakeCredentialStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeCredentialStore) Create(_ context.Context, user *domain.User) (string, error) {
	if _, ok := f.users[user.Username]; ok {
		return "", domain.ErrUsernameTaken
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return "", domain.ErrEmailTaken
		}
	}
	f.nextID++
	user.ID = fmt.Sprintf("u%d", f.nextID)
	f.users[user.Username] = user
	return user.ID, nil
}

func TestAuthService_Register(t *testing.T) {
	store := newFakeCredentialStore()
	svc := service.NewAuthService(store)
	ctx := context.Background()

	t.Run("stores a hash, not the password", func(t *testing.T) {
		user, err := svc.Register(ctx, &service.RegisterRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "pw1secret",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.NotEqual(t, "pw1secret", user.PasswordHash)
		assert.True(t, password.Verify("pw1secret", user.PasswordHash))
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.Register(ctx, &service.RegisterRequest{
			Username: "alice",
			Email:    "other@example.com",
			Password: "whatever1",
		})
		assert.Equal(t, domain.ErrUsernameTaken, err)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, &service.RegisterRequest{
			Username: "alice2",
			Email:    "alice@example.com",
			Password: "whatever1",
		})
		assert.Equal(t, domain.ErrEmailTaken, err)
	})
}

func TestAuthService_Login(t *testing.T) {
	store := newFakeCredentialStore()
	svc := service.NewAuthService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, &service.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "pw1secret",
	})
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		identity, err := svc.Login(ctx, "alice", "pw1secret")
		require.NoError(t, err)
		assert.Equal(t, "alice", identity.Username)
		assert.NotEmpty(t, identity.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice", "wrong")
		assert.Equal(t, domain.ErrInvalidCredentials, err)
	})

	t.Run("unknown username looks the same as wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody", "pw1secret")
		assert.Equal(t, domain.ErrInvalidCredentials, err)
	})
}
