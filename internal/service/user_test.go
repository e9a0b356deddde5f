package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bloglist/bloglist/internal/auth"
	"github.com/bloglist/bloglist/internal/testutil"
)

func newTestUserService(t *testing.T, store *testutil.FakeStore) (*UserService, *auth.TokenService) {
	t.Helper()
	tokens, err := auth.NewTokenService("0123456789abcdef0123456789abcdef", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	hasher := auth.NewHasher(auth.TestArgon2Params())
	return NewUserService(store, hasher, tokens, discardLogger()), tokens
}

func TestRegister(t *testing.T) {
	t.Parallel()

	store := testutil.NewFakeStore()
	svc, _ := newTestUserService(t, store)

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: "mluukkai",
		Name:     "Matti Luukkainen",
		Password: "salainen",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == "" {
		t.Fatal("user must get an ID")
	}
	if user.PasswordHash == "" || user.PasswordHash == "salainen" {
		t.Fatal("password must be stored hashed")
	}
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	store := testutil.NewFakeStore()
	svc, _ := newTestUserService(t, store)

	tests := []struct {
		name    string
		input   RegisterInput
		wantErr error
	}{
		{"short_username", RegisterInput{Username: "ml", Password: "salainen"}, ErrUsernameTooShort},
		{"short_password", RegisterInput{Username: "mluukkai", Password: "sa"}, ErrPasswordTooShort},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := svc.Register(context.Background(), test.input); !errors.Is(err, test.wantErr) {
				t.Fatalf("expected %v, got %v", test.wantErr, err)
			}
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	t.Parallel()

	store := testutil.NewFakeStore()
	svc, _ := newTestUserService(t, store)

	input := RegisterInput{Username: "mluukkai", Name: "Matti", Password: "salainen"}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	store := testutil.NewFakeStore()
	svc, tokens := newTestUserService(t, store)

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: "mluukkai",
		Name:     "Matti Luukkainen",
		Password: "salainen",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, loggedIn, err := svc.Login(context.Background(), "mluukkai", "salainen")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Fatalf("user ID = %q, want %q", loggedIn.ID, user.ID)
	}

	identity, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if identity.UserID != user.ID || identity.Username != "mluukkai" {
		t.Fatalf("identity = %+v, want registered user", identity)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()

	store := testutil.NewFakeStore()
	svc, _ := newTestUserService(t, store)

	if _, err := svc.Register(context.Background(), RegisterInput{
		Username: "mluukkai",
		Password: "salainen",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	for _, test := range []struct{ username, password string }{
		{"mluukkai", "wrong"},
		{"nobody", "salainen"},
	} {
		if _, _, err := svc.Login(context.Background(), test.username, test.password); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Login(%s): expected ErrInvalidCredentials, got %v", test.username, err)
		}
	}
}
