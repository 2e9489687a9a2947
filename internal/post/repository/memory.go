package repository

import (
	"context"
	"sync"

	"github.com/AlibekovAA/account-hub/internal/post/domain"
)

// MemoryRepository keeps posts in a map. The writer is stored as saved.
type MemoryRepository struct {
	mu     sync.RWMutex
	posts  map[int64]domain.Post
	nextID int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{posts: make(map[int64]domain.Post), nextID: 1}
}

func (r *MemoryRepository) Save(ctx context.Context, post domain.Post) (domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if post.ID == 0 {
		post.ID = r.nextID
		r.nextID++
	} else if _, ok := r.posts[post.ID]; !ok {
		return domain.Post{}, ErrPostNotFound
	}

	r.posts[post.ID] = post
	return post, nil
}

// Put stores post under its own ID, bypassing ID assignment.
func (r *MemoryRepository) Put(post domain.Post) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.posts[post.ID] = post
	if post.ID >= r.nextID {
		r.nextID = post.ID + 1
	}
}

func (r *MemoryRepository) FindByID(ctx context.Context, id int64) (domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[id]
	if !ok {
		return domain.Post{}, ErrPostNotFound
	}
	return post, nil
}
