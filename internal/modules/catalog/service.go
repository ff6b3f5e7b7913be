package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/twalumbu/martpos/internal/apperr"
)

// Service defines catalog business logic.
type Service interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	GetProductByBarcode(ctx context.Context, barcode string) (*Product, error)
	ListProducts(ctx context.Context, filter ListFilter) ([]*Product, error)
	ListLowStock(ctx context.Context, threshold int) ([]*Product, error)
	UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error

	// SetStock writes the absolute stock level. The order module uses it
	// for deduction and restoration.
	SetStock(ctx context.Context, id string, stock int) error
}

type service struct{ repo Repository }

// NewService creates a new catalog service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("product name is required")
	}
	if !req.Price.IsPositive() {
		return nil, apperr.Validation("price must be greater than zero")
	}
	if req.Cost.IsNegative() {
		return nil, apperr.Validation("cost cannot be negative")
	}
	if req.Stock < 0 {
		return nil, apperr.Validation("stock cannot be negative")
	}
	if req.Barcode != "" {
		if _, err := s.repo.GetByBarcode(ctx, req.Barcode); err == nil {
			return nil, apperr.Validation("barcode %s is already in use", req.Barcode)
		} else if !errors.Is(err, ErrNotFound) {
			return nil, apperr.Infrastructure("failed to check barcode", err)
		}
	}

	now := time.Now().UTC()
	p := &Product{
		ID:        uuid.New(),
		Name:      name,
		Price:     req.Price,
		Cost:      req.Cost,
		Stock:     req.Stock,
		Category:  req.Category,
		Barcode:   req.Barcode,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, apperr.Infrastructure("failed to create product", err)
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("product %s not found", id)
		}
		return nil, apperr.Infrastructure("failed to load product", err)
	}
	return p, nil
}

func (s *service) GetProductByBarcode(ctx context.Context, barcode string) (*Product, error) {
	p, err := s.repo.GetByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("no product with barcode %s", barcode)
		}
		return nil, apperr.Infrastructure("failed to load product", err)
	}
	return p, nil
}

func (s *service) ListProducts(ctx context.Context, filter ListFilter) ([]*Product, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperr.Infrastructure("failed to list products", err)
	}
	return products, nil
}

func (s *service) ListLowStock(ctx context.Context, threshold int) ([]*Product, error) {
	products, err := s.repo.ListLowStock(ctx, threshold)
	if err != nil {
		return nil, apperr.Infrastructure("failed to list low-stock products", err)
	}
	return products, nil
}

func (s *service) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*Product, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperr.Validation("product name is required")
		}
		p.Name = name
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			return nil, apperr.Validation("price must be greater than zero")
		}
		p.Price = *req.Price
	}
	if req.Cost != nil {
		if req.Cost.IsNegative() {
			return nil, apperr.Validation("cost cannot be negative")
		}
		p.Cost = *req.Cost
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, apperr.Validation("stock cannot be negative")
		}
		p.Stock = *req.Stock
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Barcode != nil && *req.Barcode != p.Barcode {
		if *req.Barcode != "" {
			if other, err := s.repo.GetByBarcode(ctx, *req.Barcode); err == nil && other.ID != p.ID {
				return nil, apperr.Validation("barcode %s is already in use", *req.Barcode)
			} else if err != nil && !errors.Is(err, ErrNotFound) {
				return nil, apperr.Infrastructure("failed to check barcode", err)
			}
		}
		p.Barcode = *req.Barcode
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, apperr.Infrastructure("failed to update product", err)
	}
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Infrastructure("failed to delete product", err)
	}
	return nil
}

func (s *service) SetStock(ctx context.Context, id string, stock int) error {
	if stock < 0 {
		return apperr.Validation("stock cannot be negative")
	}
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	p.Stock = stock
	p.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, p); err != nil {
		return apperr.Infrastructure("failed to update stock", err)
	}
	return nil
}
