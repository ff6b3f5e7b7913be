package settings

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
)

type memoryRepo struct {
	mu  sync.RWMutex
	cfg Settings
}

// NewMemoryRepository returns an in-memory settings backend with sensible
// defaults, used in tests and demo mode.
func NewMemoryRepository() Repository {
	return &memoryRepo{
		cfg: Settings{
			StoreName:     "MartPOS",
			Currency:      "ZMW",
			TaxEnabled:    false,
			TaxPercent:    decimal.Zero,
			LowStockLevel: 5,
		},
	}
}

func (r *memoryRepo) Get(_ context.Context) (*Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg := r.cfg
	return &cfg, nil
}

func (r *memoryRepo) Save(_ context.Context, s *Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cfg = *s
	return nil
}
