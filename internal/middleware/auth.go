package middleware

import (
	"log/slog"
	"net/http"

	"github.com/bloglist/bloglist/internal/auth"
	"github.com/bloglist/bloglist/internal/metrics"
)

// IdentityConfig holds configuration for the identity middleware.
type IdentityConfig struct {
	Logger  *slog.Logger
	Tokens  *auth.TokenService
	Metrics metrics.Recorder
}

// Identity returns a middleware that resolves the caller's identity
// from the Authorization header and attaches it to the request context.
// Requests without a usable token proceed anonymously; operations that
// require an identity reject them at the service layer, so missing and
// invalid tokens produce the same response.
func Identity(cfg IdentityConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := cfg.Tokens.VerifyHeader(r.Header.Get("Authorization"))
			if err != nil {
				if r.Header.Get("Authorization") != "" {
					cfg.Metrics.IncAuthFailure(metrics.ReasonToken)
					cfg.Logger.Warn("token rejected",
						slog.String("reason", err.Error()),
						slog.String("endpoint", r.Method+" "+r.URL.Path),
						slog.String("request_id", GetRequestID(r.Context())),
					)
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := auth.ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
