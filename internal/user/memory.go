package user

import (
	"context"
	"sort"
	"sync"
)

// memoryRepository is a map-backed Repository kept for tests.
type memoryRepository struct {
	mu     sync.Mutex
	users  map[int64]*User
	nextID int64
}

// NewMemoryRepository creates an in-memory Repository. Production code uses
// the pgx implementation; this one backs the service tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{users: make(map[int64]*User)}
}

func (r *memoryRepository) Create(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == u.Email {
			return ErrEmailAlreadyUsed
		}
	}

	r.nextID++
	u.ID = r.nextID
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id int64) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memoryRepository) GetAll(_ context.Context) ([]*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]*User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		users = append(users, &clone)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *memoryRepository) Update(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.ID]; !ok {
		return ErrNotFound
	}
	for id, existing := range r.users {
		if id != u.ID && existing.Email == u.Email {
			return ErrEmailAlreadyUsed
		}
	}
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}
