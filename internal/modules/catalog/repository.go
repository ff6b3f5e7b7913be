package catalog

import (
	"context"
	"errors"
)

// ErrNotFound is returned by all backends for a missing product.
var ErrNotFound = errors.New("product not found")

// Repository defines the interface for product storage. Implementations
// must reflect the latest committed stock on every GetByID call; nothing is
// cached between calls.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*Product, error)
	List(ctx context.Context, filter ListFilter) ([]*Product, error)
	ListLowStock(ctx context.Context, threshold int) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
}
