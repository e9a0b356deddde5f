package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestTokenService(t *testing.T, ttl time.Duration) *TokenService {
	t.Helper()
	svc, err := NewTokenService(testSecret, ttl)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return svc
}

func TestNewTokenServiceRejectsShortSecret(t *testing.T) {
	t.Parallel()

	if _, err := NewTokenService("short", time.Hour); err == nil {
		t.Fatal("expected error for short secret")
	}
}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t, time.Hour)

	token, err := svc.Issue("user-1", "mluukkai")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	id, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id.UserID != "user-1" || id.Username != "mluukkai" {
		t.Fatalf("identity = %+v, want user-1/mluukkai", id)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t, -time.Minute)

	token, err := svc.Issue("user-1", "mluukkai")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := svc.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for expired token, got %v", err)
	}
}

func TestVerifyTamperedToken(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t, time.Hour)
	other := newTestTokenService(t, time.Hour)
	other.secret = []byte(strings.Repeat("x", 32))

	token, err := other.Issue("user-1", "mluukkai")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := svc.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong signature, got %v", err)
	}
}

func TestVerifyHeader(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(t, time.Hour)
	token, err := svc.Issue("user-1", "mluukkai")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tests := []struct {
		name    string
		header  string
		wantErr error
	}{
		{"missing", "", ErrTokenMissing},
		{"wrong_scheme", "Basic " + token, ErrTokenInvalid},
		{"no_token", "Bearer ", ErrTokenInvalid},
		{"garbage", "Bearer not.a.token", ErrTokenInvalid},
		{"valid", "Bearer " + token, nil},
		{"lowercase_scheme", "bearer " + token, nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			id, err := svc.VerifyHeader(test.header)
			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Fatalf("expected %v, got %v", test.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id.UserID != "user-1" {
				t.Fatalf("UserID = %q, want user-1", id.UserID)
			}
		})
	}
}
