package auth

import "context"

// Service defines authentication business logic.
type Service interface {
	// Login verifies credentials and returns a signed token. It also
	// publishes the session into the app state store.
	Login(ctx context.Context, username, password string) (string, error)

	// Logout clears the app session.
	Logout(ctx context.Context)
}
