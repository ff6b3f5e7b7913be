package customer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/twalumbu/martpos/internal/apperr"
)

// Service defines customer business logic.
type Service interface {
	CreateCustomer(ctx context.Context, req UpsertRequest) (*Customer, error)
	GetCustomer(ctx context.Context, id string) (*Customer, error)
	ListCustomers(ctx context.Context, search string) ([]*Customer, error)
	UpdateCustomer(ctx context.Context, id string, req UpsertRequest) (*Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
}

type service struct{ repo Repository }

// NewService creates a new customer service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateCustomer(ctx context.Context, req UpsertRequest) (*Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("customer name is required")
	}
	now := time.Now().UTC()
	c := &Customer{
		ID:        uuid.New(),
		Name:      name,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, apperr.Infrastructure("failed to create customer", err)
	}
	return c, nil
}

func (s *service) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("customer %s not found", id)
		}
		return nil, apperr.Infrastructure("failed to load customer", err)
	}
	return c, nil
}

func (s *service) ListCustomers(ctx context.Context, search string) ([]*Customer, error) {
	customers, err := s.repo.List(ctx, search)
	if err != nil {
		return nil, apperr.Infrastructure("failed to list customers", err)
	}
	return customers, nil
}

func (s *service) UpdateCustomer(ctx context.Context, id string, req UpsertRequest) (*Customer, error) {
	c, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("customer name is required")
	}
	c.Name = name
	c.Phone = req.Phone
	c.Email = req.Email
	c.Address = req.Address
	c.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, apperr.Infrastructure("failed to update customer", err)
	}
	return c, nil
}

func (s *service) DeleteCustomer(ctx context.Context, id string) error {
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Infrastructure("failed to delete customer", err)
	}
	return nil
}
