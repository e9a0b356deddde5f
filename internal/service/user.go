package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/bloglist/bloglist/internal/auth"
	"github.com/bloglist/bloglist/internal/model"
	"github.com/bloglist/bloglist/internal/repository"
)

// User service errors.
var (
	ErrUsernameTooShort   = errors.New("username must be at least 3 characters")
	ErrPasswordTooShort   = errors.New("password must be at least 3 characters")
	ErrUsernameTaken      = errors.New("username must be unique")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

const minCredentialLength = 3

// UserStore is the persistence capability the user service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

// UserService handles registration, listing and login.
type UserService struct {
	store  UserStore
	hasher *auth.Hasher
	tokens *auth.TokenService
	logger *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(store UserStore, hasher *auth.Hasher, tokens *auth.TokenService, logger *slog.Logger) *UserService {
	return &UserService{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// RegisterInput is the registration payload schema.
type RegisterInput struct {
	Username string
	Name     string
	Password string
}

// Register creates a new user with a hashed credential.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if len(input.Username) < minCredentialLength {
		return nil, ErrUsernameTooShort
	}
	if len(input.Password) < minCredentialLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		ID:           ulid.Make().String(),
		Username:     input.Username,
		Name:         input.Name,
		PasswordHash: hash,
		BlogIDs:      []string{},
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// List returns all registered users.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// Login verifies the credentials and issues a signed token. The same error
// is returned for an unknown username and a wrong password so callers
// cannot enumerate accounts.
func (s *UserService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("looking up user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil || !ok {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return "", nil, fmt.Errorf("issuing token: %w", err)
	}

	s.logger.Info("user logged in", slog.String("user_id", user.ID))

	return token, user, nil
}
