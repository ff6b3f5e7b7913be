package customer

import (
	"context"
	"errors"
)

// ErrNotFound is returned for a missing customer.
var ErrNotFound = errors.New("customer not found")

// Repository defines customer storage.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id string) (*Customer, error)
	List(ctx context.Context, search string) ([]*Customer, error)
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id string) error
}
