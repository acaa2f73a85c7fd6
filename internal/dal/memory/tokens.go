package memory

import (
	"context"
	"sync"
	"time"

	"github.com/kittiBank/order-manage-web/internal/dal/interfaces/itokenrepo"
)

// TokenRepository is a process-local refresh token store.
type TokenRepository struct {
	mu     sync.RWMutex
	tokens map[string]itokenrepo.RefreshToken
}

func NewTokenRepository() *TokenRepository {
	return &TokenRepository{tokens: make(map[string]itokenrepo.RefreshToken)}
}

func (r *TokenRepository) Insert(_ context.Context, token itokenrepo.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens[token.Token] = token

	return nil
}

func (r *TokenRepository) Get(_ context.Context, token string) (*itokenrepo.RefreshToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tokens[token]
	if !ok {
		return nil, itokenrepo.ErrNotFound
	}

	return &t, nil
}

func (r *TokenRepository) Touch(_ context.Context, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tokens[token]
	if !ok {
		return itokenrepo.ErrNotFound
	}
	t.ExpiresAt = expiresAt
	r.tokens[token] = t

	return nil
}

func (r *TokenRepository) RevokeByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, key)
		}
	}

	return nil
}
