package order

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned by all backends for a missing order.
var ErrNotFound = errors.New("order not found")

// Repository defines data access for orders.
type Repository interface {
	// Create persists the order header and all its items as one unit. If
	// the item insert fails, the header insert must not survive.
	Create(ctx context.Context, o *Order) error

	// GetByID retrieves an order with its items.
	GetByID(ctx context.Context, id string) (*Order, error)

	// List returns all orders, newest first.
	List(ctx context.Context) ([]*Order, error)

	// ListByStatus returns orders in the given state, newest first.
	ListByStatus(ctx context.Context, status OrderStatus) ([]*Order, error)

	// ListByDateRange returns orders created in [from, to), newest first.
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*Order, error)

	// UpdateHeader writes status, payment method, notes, timestamps and
	// totals from o. Items are untouched.
	UpdateHeader(ctx context.Context, o *Order) error

	// ReplaceItems swaps the order's item set wholesale and writes the
	// recomputed header, as one unit.
	ReplaceItems(ctx context.Context, o *Order) error

	// Delete removes the order header and its items as one unit.
	Delete(ctx context.Context, id string) error

	// TotalSales sums Total across paid and completed orders.
	TotalSales(ctx context.Context) (decimal.Decimal, error)

	// TopProducts returns products by summed quantity across paid and
	// completed orders, highest first.
	TopProducts(ctx context.Context, limit int) ([]ProductSales, error)
}
