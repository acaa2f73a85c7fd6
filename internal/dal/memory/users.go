package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/kittiBank/order-manage-web/internal/service/models/user"
)

// UserRepository is a process-local user store keyed by id with a secondary
// email index. Email matching is case-insensitive.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]user.User
	byEmail map[string]string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]user.User),
		byEmail: make(map[string]string),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepository) Insert(_ context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := normalizeEmail(u.Email)
	if _, exists := r.byEmail[email]; exists {
		return user.ErrEmailExists
	}

	r.byID[u.ID] = u
	r.byEmail[email] = u.ID

	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, user.ErrNotFound
	}

	return &u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, user.ErrNotFound
	}
	u := r.byID[id]

	return &u, nil
}
