package order

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type memoryRepo struct {
	mu     sync.RWMutex
	orders map[string]*Order
}

// NewMemoryRepository returns an in-memory order backend, used as the test
// double behind the same Repository contract.
func NewMemoryRepository() Repository {
	return &memoryRepo{orders: make(map[string]*Order)}
}

func (r *memoryRepo) Create(_ context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID.String()] = cloneOrder(o)
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneOrder(o), nil
}

func (r *memoryRepo) List(_ context.Context) ([]*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(*Order) bool { return true }), nil
}

func (r *memoryRepo) ListByStatus(_ context.Context, status OrderStatus) ([]*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(o *Order) bool { return o.Status == status }), nil
}

func (r *memoryRepo) ListByDateRange(_ context.Context, from, to time.Time) ([]*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(o *Order) bool {
		return !o.CreatedAt.Before(from) && o.CreatedAt.Before(to)
	}), nil
}

func (r *memoryRepo) UpdateHeader(_ context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[o.ID.String()]
	if !ok {
		return ErrNotFound
	}
	cp := cloneOrder(o)
	cp.Items = stored.Items
	r.orders[o.ID.String()] = cp
	return nil
}

func (r *memoryRepo) ReplaceItems(_ context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[o.ID.String()]; !ok {
		return ErrNotFound
	}
	r.orders[o.ID.String()] = cloneOrder(o)
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *memoryRepo) TotalSales(_ context.Context) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := decimal.Zero
	for _, o := range r.orders {
		if o.Status.Deducted() {
			total = total.Add(o.Total)
		}
	}
	return total, nil
}

func (r *memoryRepo) TopProducts(_ context.Context, limit int) ([]ProductSales, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byProduct := map[string]*ProductSales{}
	for _, o := range r.orders {
		if !o.Status.Deducted() {
			continue
		}
		for _, item := range o.Items {
			key := item.ProductID.String()
			ps, ok := byProduct[key]
			if !ok {
				ps = &ProductSales{ProductID: item.ProductID, ProductName: item.ProductName}
				byProduct[key] = ps
			}
			ps.Quantity += item.Quantity
		}
	}

	out := make([]ProductSales, 0, len(byProduct))
	for _, ps := range byProduct {
		out = append(out, *ps)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity == out[j].Quantity {
			return out[i].ProductName < out[j].ProductName
		}
		return out[i].Quantity > out[j].Quantity
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// collect must be called with at least the read lock held.
func (r *memoryRepo) collect(keep func(*Order) bool) []*Order {
	var out []*Order
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() > out[j].ID.String()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func cloneOrder(src *Order) *Order {
	dup := *src
	dup.Items = make([]*OrderItem, len(src.Items))
	for i, item := range src.Items {
		cp := *item
		dup.Items[i] = &cp
	}
	if src.CompletedAt != nil {
		t := *src.CompletedAt
		dup.CompletedAt = &t
	}
	return &dup
}
