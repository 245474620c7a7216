package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/projtrack-app/projtrack-backend/internal/auth/domain"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "session:" // Key for a session record: session:{token}
	defaultTTL = 24 * time.Hour
)

var ErrSessionNotFound = errors.New("session not found")

// Record is the identity stored under a session token. Expiry is kept in the
// record as well as on the key so a lagging TTL can never resurrect a session.
type Record struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Manager maps opaque session tokens to identities in Redis.
type Manager struct {
	client *redis.Client
	ttl    time.Duration
}

// NewManager creates a Manager. A non-positive ttl falls back to 24 hours.
func NewManager(client *redis.Client, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Manager{client: client, ttl: ttl}
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create stores a new session for the given user and returns its token.
func (m *Manager) Create(ctx context.Context, userID, username string) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}

	now := time.Now().UTC()
	rec := Record{
		Token:     token,
		UserID:    userID,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("marshal session record: %w", err)
	}

	if err := m.client.Set(ctx, sessionKey(token), data, m.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return token, nil
}

// Load resolves a token to the identity it was created with. Absent, expired
// and malformed records all report ErrSessionNotFound.
func (m *Manager) Load(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	data, err := m.client.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var rec Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, ErrSessionNotFound
	}

	if !rec.ExpiresAt.After(time.Now().UTC()) {
		return nil, ErrSessionNotFound
	}

	return &domain.Identity{UserID: rec.UserID, Username: rec.Username}, nil
}

// Destroy removes a session. Destroying an absent token is not an error.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := m.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func sessionKey(token string) string {
	return keyPrefix + token
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
