package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/twalumbu/martpos/internal/apperr"
)

type service struct {
	repo Repository
}

// NewService creates a new user service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) RegisterUser(ctx context.Context, req RegisterRequest) (*User, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if username == "" {
		return nil, apperr.Validation("username is required")
	}
	if len(req.Password) < 6 {
		return nil, apperr.Validation("password must be at least 6 characters")
	}
	role := Role(req.Role)
	if role == "" {
		role = RoleCashier
	}
	if !role.Valid() {
		return nil, apperr.Validation("invalid role: %s (allowed: admin, cashier)", req.Role)
	}
	if _, err := s.repo.GetUserByUsername(ctx, username); err == nil {
		return nil, apperr.Validation("username %s is already taken", username)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, apperr.Infrastructure("failed to check username", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Infrastructure("failed to hash password", err)
	}

	now := time.Now().UTC()
	u := &User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hashed),
		FullName:     req.FullName,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, apperr.Infrastructure("failed to create user", err)
	}
	return u, nil
}

func (s *service) GetUser(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("user %s not found", id)
		}
		return nil, apperr.Infrastructure("failed to load user", err)
	}
	return u, nil
}

func (s *service) ListUsers(ctx context.Context) ([]*User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, apperr.Infrastructure("failed to list users", err)
	}
	return users, nil
}

func (s *service) SetActive(ctx context.Context, id string, active bool) (*User, error) {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	u.IsActive = active
	u.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateUser(ctx, u); err != nil {
		return nil, apperr.Infrastructure("failed to update user", err)
	}
	return u, nil
}
