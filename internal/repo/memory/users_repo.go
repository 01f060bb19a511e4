package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/geocoder89/portfolio/internal/domain/user"
)

var ErrDuplicateUsername = errors.New("username already exists")

type UsersRepo struct {
	mu     sync.RWMutex
	nextID int64
	byName map[string]user.User
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{byName: make(map[string]user.User)}
}

func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	r.mu.RLock()
	u, ok := r.byName[username]
	r.mu.RUnlock()

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return u, nil
}

func (r *UsersRepo) Create(ctx context.Context, username, passwordHash string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[username]; exists {
		return user.User{}, ErrDuplicateUsername
	}

	r.nextID++

	u := user.User{
		ID:           r.nextID,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	r.byName[username] = u

	return u, nil
}

func (r *UsersRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, u := range r.byName {
		if u.ID == id {
			u.PasswordHash = passwordHash
			r.byName[name] = u
			return nil
		}
	}

	return user.ErrNotFound
}
