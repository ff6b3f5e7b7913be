package auth

import (
	"context"
	"testing"

	"github.com/dgrijalva/jwt-go"

	"github.com/twalumbu/martpos/internal/apperr"
	"github.com/twalumbu/martpos/internal/modules/user"
	"github.com/twalumbu/martpos/internal/state"
)

const testSecret = "test-secret"

func newFixture(t *testing.T) (Service, user.Service, *state.Store) {
	t.Helper()
	repo := user.NewMemoryRepository()
	users := user.NewService(repo)
	appState := state.New("en")
	return NewService(repo, appState, testSecret), users, appState
}

func register(t *testing.T, users user.Service, username, password string) *user.User {
	t.Helper()
	u, err := users.RegisterUser(context.Background(), user.RegisterRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	return u
}

func TestLoginIssuesTokenAndSession(t *testing.T) {
	auth, users, appState := newFixture(t)
	u := register(t, users, "alice", "secret12")

	token, err := auth.Login(context.Background(), "alice", "secret12")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	claims := &jwt.StandardClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims.Subject != u.ID.String() {
		t.Fatalf("subject = %q, want user id", claims.Subject)
	}

	sess := appState.Session()
	if sess == nil || sess.Username != "alice" || sess.Role != "cashier" {
		t.Fatalf("session = %+v", sess)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth, users, appState := newFixture(t)
	register(t, users, "alice", "secret12")

	if _, err := auth.Login(context.Background(), "alice", "wrong"); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("wrong password: err = %v, want validation", err)
	}
	if _, err := auth.Login(context.Background(), "nobody", "secret12"); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("unknown user: err = %v, want validation", err)
	}
	if appState.Session() != nil {
		t.Fatal("failed login must not set a session")
	}
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	auth, users, _ := newFixture(t)
	u := register(t, users, "alice", "secret12")
	if _, err := users.SetActive(context.Background(), u.ID.String(), false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}

	_, err := auth.Login(context.Background(), "alice", "secret12")
	if apperr.KindOf(err) != apperr.KindInvalidState {
		t.Fatalf("err = %v, want invalid state", err)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	auth, users, appState := newFixture(t)
	register(t, users, "alice", "secret12")

	if _, err := auth.Login(context.Background(), "alice", "secret12"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	auth.Logout(context.Background())
	if appState.Session() != nil {
		t.Fatal("session should be cleared on logout")
	}
}
