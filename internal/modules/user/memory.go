package user

import (
	"context"
	"sort"
	"sync"
)

type memoryRepo struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewMemoryRepository returns an in-memory user backend for tests.
func NewMemoryRepository() Repository {
	return &memoryRepo{users: make(map[string]User)}
}

func (r *memoryRepo) CreateUser(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID.String()] = *u
	return nil
}

func (r *memoryRepo) GetUserByID(_ context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := u
	return &cp, nil
}

func (r *memoryRepo) GetUserByUsername(_ context.Context, username string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepo) ListUsers(_ context.Context) ([]*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*User, 0, len(r.users))
	for _, u := range r.users {
		cp := u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *memoryRepo) UpdateUser(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID.String()]; !ok {
		return ErrNotFound
	}
	r.users[u.ID.String()] = *u
	return nil
}
