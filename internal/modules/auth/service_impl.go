package auth

import (
	"context"
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/twalumbu/martpos/internal/apperr"
	"github.com/twalumbu/martpos/internal/modules/user"
	"github.com/twalumbu/martpos/internal/state"
)

type service struct {
	userRepo user.Repository
	appState *state.Store
	secret   []byte
}

// NewService creates a new auth service. The signing secret comes from
// configuration.
func NewService(userRepo user.Repository, appState *state.Store, secret string) Service {
	return &service{userRepo: userRepo, appState: appState, secret: []byte(secret)}
}

func (s *service) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", apperr.Validation("invalid credentials")
		}
		return "", apperr.Infrastructure("failed to load user", err)
	}
	if !u.IsActive {
		return "", apperr.InvalidState("account is disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", apperr.Validation("invalid credentials")
	}

	claims := &jwt.StandardClaims{
		Subject:   u.ID.String(),
		ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperr.Infrastructure("failed to sign token", err)
	}

	s.appState.SetSession(&state.Session{
		UserID:   u.ID.String(),
		Username: u.Username,
		Role:     string(u.Role),
	})
	return signed, nil
}

func (s *service) Logout(_ context.Context) {
	s.appState.SetSession(nil)
}
