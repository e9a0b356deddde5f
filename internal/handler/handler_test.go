package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bloglist/bloglist/internal/auth"
	"github.com/bloglist/bloglist/internal/metrics"
	"github.com/bloglist/bloglist/internal/middleware"
	"github.com/bloglist/bloglist/internal/service"
	"github.com/bloglist/bloglist/internal/testutil"
)

// testAPI wires the real handlers and services over in-memory fakes.
type testAPI struct {
	router http.Handler
	store  *testutil.FakeStore
	cache  *testutil.FakeCache
	tokens *auth.TokenService
	users  *service.UserService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := testutil.NewFakeStore()
	cache := testutil.NewFakeCache()

	tokens, err := auth.NewTokenService("test-secret-at-least-16", time.Hour)
	if err != nil {
		t.Fatalf("creating token service: %v", err)
	}

	blogService := service.NewBlogService(store, cache, metrics.NewNoop(), logger, false)
	userService := service.NewUserService(store, auth.NewHasher(auth.TestArgon2Params()), tokens, logger)

	blogHandler := NewBlogHandler(blogService, logger)
	userHandler := NewUserHandler(userService, logger)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Identity(middleware.IdentityConfig{
			Logger:  logger,
			Tokens:  tokens,
			Metrics: metrics.NewNoop(),
		}))

		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", blogHandler.List)
			r.Get("/stats", blogHandler.Stats)
			r.Post("/", blogHandler.Create)
			r.Put("/{id}", blogHandler.Update)
			r.Delete("/{id}", blogHandler.Delete)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.List)
			r.Post("/", userHandler.Register)
		})

		r.Post("/login", userHandler.Login)
	})

	return &testAPI{
		router: r,
		store:  store,
		cache:  cache,
		tokens: tokens,
		users:  userService,
	}
}

// tokenFor issues a bearer token for an already stored user.
func (a *testAPI) tokenFor(t *testing.T, userID, username string) string {
	t.Helper()
	token, err := a.tokens.Issue(userID, username)
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}
	return "Bearer " + token
}
