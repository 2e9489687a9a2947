package repository

import (
	"context"
	"sync"

	commonerrors "github.com/AlibekovAA/account-hub/internal/common/errors"
	"github.com/AlibekovAA/account-hub/internal/user/domain"
)

// MemoryRepository keeps users in a map. It enforces the same single
// ACTIVE-per-email rule as the database index.
type MemoryRepository struct {
	mu     sync.RWMutex
	users  map[int64]domain.User
	nextID int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[int64]domain.User), nextID: 1}
}

func (r *MemoryRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.IsActive() {
		for id, other := range r.users {
			if id != user.ID && other.IsActive() && other.Email == user.Email {
				return domain.User{}, commonerrors.ErrEmailAlreadyInUse
			}
		}
	}

	if !user.IsPersisted() {
		user.ID = r.nextID
		r.nextID++
	} else if _, ok := r.users[user.ID]; !ok {
		return domain.User{}, ErrUserNotFound
	}

	r.users[user.ID] = user
	return user, nil
}

// Put stores user under its own ID, bypassing ID assignment.
func (r *MemoryRepository) Put(user domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.ID] = user
	if user.ID >= r.nextID {
		r.nextID = user.ID + 1
	}
}

func (r *MemoryRepository) FindByID(ctx context.Context, id int64) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return user, nil
}

func (r *MemoryRepository) FindByIDAndStatus(ctx context.Context, id int64, status domain.Status) (domain.User, error) {
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	if user.Status != status {
		return domain.User{}, ErrUserNotFound
	}
	return user, nil
}

func (r *MemoryRepository) FindByEmailAndStatus(ctx context.Context, email string, status domain.Status) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		found domain.User
		ok    bool
	)
	for _, user := range r.users {
		if user.Email != email || user.Status != status {
			continue
		}
		if !ok || user.ID < found.ID {
			found, ok = user, true
		}
	}
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return found, nil
}
