package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
)

type memoryRepo struct {
	mu       sync.RWMutex
	products map[string]Product
}

// NewMemoryRepository returns an in-memory product backend, used as the
// test double behind the same Repository contract.
func NewMemoryRepository() Repository {
	return &memoryRepo{products: make(map[string]Product)}
}

func (r *memoryRepo) Create(_ context.Context, p *Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID.String()] = *p
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (r *memoryRepo) GetByBarcode(_ context.Context, barcode string) (*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.Barcode != "" && p.Barcode == barcode {
			cp := p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepo) List(_ context.Context, filter ListFilter) ([]*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Product
	for _, p := range r.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.ActiveOnly && !p.IsActive {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(p.Name), needle) &&
				!strings.Contains(strings.ToLower(p.Barcode), needle) {
				continue
			}
		}
		cp := p
		out = append(out, &cp)
	}
	sortProducts(out)
	return out, nil
}

func (r *memoryRepo) ListLowStock(_ context.Context, threshold int) ([]*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Product
	for _, p := range r.products {
		if p.IsActive && p.Stock <= threshold {
			cp := p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Stock == out[j].Stock {
			return out[i].Name < out[j].Name
		}
		return out[i].Stock < out[j].Stock
	})
	return out, nil
}

func (r *memoryRepo) Update(_ context.Context, p *Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID.String()]; !ok {
		return ErrNotFound
	}
	r.products[p.ID.String()] = *p
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func sortProducts(products []*Product) {
	sort.Slice(products, func(i, j int) bool {
		if products[i].Category == products[j].Category {
			return products[i].Name < products[j].Name
		}
		return products[i].Category < products[j].Category
	})
}
