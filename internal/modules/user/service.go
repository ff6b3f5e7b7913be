package user

import "context"

// Service defines user management business logic.
type Service interface {
	// RegisterUser creates an operator account with a bcrypt-hashed password.
	RegisterUser(ctx context.Context, req RegisterRequest) (*User, error)

	// GetUser retrieves a user by id.
	GetUser(ctx context.Context, id string) (*User, error)

	// ListUsers returns all operator accounts.
	ListUsers(ctx context.Context) ([]*User, error)

	// SetActive enables or disables an account.
	SetActive(ctx context.Context, id string, active bool) (*User, error)
}
