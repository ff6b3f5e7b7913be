package settings

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/twalumbu/martpos/internal/apperr"
)

// Service defines settings business logic, including the tax calculation
// the order module depends on.
type Service interface {
	Get(ctx context.Context) (*Settings, error)
	Update(ctx context.Context, req UpdateRequest) (*Settings, error)

	// CalculateTotalWithTax applies the configured tax to a subtotal. It is
	// pure with respect to the settings committed at call time.
	CalculateTotalWithTax(ctx context.Context, subtotal decimal.Decimal) (TaxBreakdown, error)
}

type service struct {
	repo Repository
}

// NewService creates a new settings service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

var hundred = decimal.NewFromInt(100)

func (s *service) Get(ctx context.Context) (*Settings, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return nil, apperr.Infrastructure("failed to load settings", err)
	}
	return cfg, nil
}

func (s *service) Update(ctx context.Context, req UpdateRequest) (*Settings, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return nil, apperr.Infrastructure("failed to load settings", err)
	}

	if req.StoreName != nil {
		cfg.StoreName = *req.StoreName
	}
	if req.Currency != nil {
		cfg.Currency = *req.Currency
	}
	if req.TaxEnabled != nil {
		cfg.TaxEnabled = *req.TaxEnabled
	}
	if req.TaxPercent != nil {
		if req.TaxPercent.IsNegative() || req.TaxPercent.GreaterThan(hundred) {
			return nil, apperr.Validation("tax percent must be between 0 and 100")
		}
		cfg.TaxPercent = *req.TaxPercent
	}
	if req.ReceiptFooter != nil {
		cfg.ReceiptFooter = *req.ReceiptFooter
	}
	if req.LowStockLevel != nil {
		if *req.LowStockLevel < 0 {
			return nil, apperr.Validation("low stock level cannot be negative")
		}
		cfg.LowStockLevel = *req.LowStockLevel
	}
	cfg.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, cfg); err != nil {
		return nil, apperr.Infrastructure("failed to save settings", err)
	}
	return cfg, nil
}

func (s *service) CalculateTotalWithTax(ctx context.Context, subtotal decimal.Decimal) (TaxBreakdown, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return TaxBreakdown{}, apperr.Infrastructure("failed to load settings", err)
	}
	if !cfg.TaxEnabled {
		return TaxBreakdown{Tax: decimal.Zero, Total: subtotal}, nil
	}
	tax := subtotal.Mul(cfg.TaxPercent).Div(hundred).Round(2)
	return TaxBreakdown{Tax: tax, Total: subtotal.Add(tax)}, nil
}
