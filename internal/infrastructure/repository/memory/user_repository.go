package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/riskibarqy/survivor-league/internal/domain/user"
)

type UserRepository struct {
	mu      sync.RWMutex
	items   map[string]user.User
	byEmail map[string]string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		items:   make(map[string]user.User),
		byEmail: make(map[string]string),
	}
}

func (r *UserRepository) GetByID(_ context.Context, id string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]
	return u, ok, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return user.User{}, false, nil
	}

	u, ok := r.items[id]
	return u, ok, nil
}

func (r *UserRepository) Create(_ context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[u.ID] = u
	r.byEmail[strings.ToLower(u.Email)] = u.ID
	return nil
}

func (r *UserRepository) UpdatePasswordHash(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]
	if !ok {
		return nil
	}
	u.PasswordHash = passwordHash
	r.items[id] = u
	return nil
}
