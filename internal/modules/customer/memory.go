package customer

import (
	"context"
	"sort"
	"strings"
	"sync"
)

type memoryRepo struct {
	mu        sync.RWMutex
	customers map[string]Customer
}

// NewMemoryRepository returns an in-memory customer backend, used as the
// test double behind the same Repository contract.
func NewMemoryRepository() Repository {
	return &memoryRepo{customers: make(map[string]Customer)}
}

func (r *memoryRepo) Create(_ context.Context, c *Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers[c.ID.String()] = *c
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := c
	return &cp, nil
}

func (r *memoryRepo) List(_ context.Context, search string) ([]*Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(search)
	var out []*Customer
	for _, c := range r.customers {
		if needle != "" &&
			!strings.Contains(strings.ToLower(c.Name), needle) &&
			!strings.Contains(strings.ToLower(c.Phone), needle) {
			continue
		}
		cp := c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memoryRepo) Update(_ context.Context, c *Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[c.ID.String()]; !ok {
		return ErrNotFound
	}
	r.customers[c.ID.String()] = *c
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[id]; !ok {
		return ErrNotFound
	}
	delete(r.customers, id)
	return nil
}
