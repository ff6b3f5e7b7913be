package settings

import "context"

// Repository defines storage for the settings row.
type Repository interface {
	// Get returns the current settings.
	Get(ctx context.Context) (*Settings, error)

	// Save persists the full settings row.
	Save(ctx context.Context, s *Settings) error
}
