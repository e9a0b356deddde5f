// Package main is the entrypoint for the bloglist API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/bloglist/bloglist/internal/auth"
	"github.com/bloglist/bloglist/internal/cache"
	"github.com/bloglist/bloglist/internal/config"
	"github.com/bloglist/bloglist/internal/handler"
	"github.com/bloglist/bloglist/internal/metrics"
	"github.com/bloglist/bloglist/internal/middleware"
	"github.com/bloglist/bloglist/internal/repository"
	"github.com/bloglist/bloglist/internal/server"
	"github.com/bloglist/bloglist/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	// Database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	if err := repo.Migrate(ctx); err != nil {
		logger.Error("failed to apply schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Cache
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	// Auth primitives
	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		logger.Error("failed to initialize token service", slog.String("error", err.Error()))
		os.Exit(1)
	}
	hasher := auth.NewHasher(auth.DefaultArgon2Params())

	// Services
	recorder := metrics.NewInMemory()
	blogService := service.NewBlogService(repo, cacheClient, recorder, logger, cfg.EnforceOwnershipOnUpdate)
	userService := service.NewUserService(repo, hasher, tokens, logger)

	// Handlers
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	metricsHandler := handler.NewMetricsHandler(recorder)
	blogHandler := handler.NewBlogHandler(blogService, logger)
	userHandler := handler.NewUserHandler(userService, logger)

	r := setupRouter(routerDeps{
		health:   healthHandler,
		metrics:  metricsHandler,
		blogs:    blogHandler,
		users:    userHandler,
		tokens:   tokens,
		recorder: recorder,
		cache:    cacheClient,
		cfg:      cfg,
		logger:   logger,
	})

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type routerDeps struct {
	health   *handler.HealthHandler
	metrics  *handler.MetricsHandler
	blogs    *handler.BlogHandler
	users    *handler.UserHandler
	tokens   *auth.TokenService
	recorder metrics.Recorder
	cache    *cache.Cache
	cfg      *config.Config
	logger   *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger))
	r.Use(middleware.BodyLimit(deps.cfg.MaxRequestBodySize))

	// Health endpoints
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)
	r.Get("/metrics", deps.metrics.Metrics)

	identityCfg := middleware.IdentityConfig{
		Logger:  deps.logger,
		Tokens:  deps.tokens,
		Metrics: deps.recorder,
	}

	rateLimitCfg := middleware.RateLimitConfig{
		Logger:  deps.logger,
		Cache:   deps.cache,
		Enabled: deps.cfg.RateLimitEnabled,
		RPS:     deps.cfg.RateLimitRPS,
		Burst:   deps.cfg.RateLimitBurst,
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimitIP(rateLimitCfg))
		r.Use(middleware.Identity(identityCfg))

		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", deps.blogs.List)
			r.Get("/stats", deps.blogs.Stats)
			r.Post("/", deps.blogs.Create)
			r.Put("/{id}", deps.blogs.Update)
			r.Delete("/{id}", deps.blogs.Delete)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", deps.users.List)
			r.Post("/", deps.users.Register)
		})

		r.Post("/login", deps.users.Login)
	})

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
