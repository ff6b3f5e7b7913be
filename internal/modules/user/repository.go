package user

import (
	"context"
	"errors"
)

// ErrNotFound is returned for a missing user.
var ErrNotFound = errors.New("user not found")

// Repository defines user storage.
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	UpdateUser(ctx context.Context, u *User) error
}
