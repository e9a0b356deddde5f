// Package auth provides token-based authentication and the ownership
// authorization rules for blog mutations.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bloglist/bloglist/internal/model"
)

const tokenIssuer = "bloglist"

// Verification failures. Handlers and services treat all of them as an
// authentication error; the distinction exists for logs and tests.
var (
	ErrTokenMissing = errors.New("auth: token missing")
	ErrTokenInvalid = errors.New("auth: token invalid")
)

// TokenService signs and verifies the HS256 tokens carried in the
// Authorization header. The same secret is used for both operations.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService. The secret must be at least
// 16 bytes; anything shorter is trivially brute-forceable.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: token secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// tokenClaims carries the caller identity. Subject holds the user ID.
type tokenClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Issue creates a signed token for the given user.
func (s *TokenService) Issue(userID, username string) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Username: username,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string and returns the caller
// identity. A token that validates but carries no subject is rejected.
func (s *TokenService) Verify(tokenStr string) (*model.Identity, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&tokenClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: no subject", ErrTokenInvalid)
	}

	return &model.Identity{UserID: claims.Subject, Username: claims.Username}, nil
}

// VerifyHeader resolves an Authorization header value to an identity.
// The header must be of the form "Bearer <token>" (scheme case-insensitive).
func (s *TokenService) VerifyHeader(header string) (*model.Identity, error) {
	if header == "" {
		return nil, ErrTokenMissing
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return nil, fmt.Errorf("%w: malformed authorization header", ErrTokenInvalid)
	}

	return s.Verify(token)
}
