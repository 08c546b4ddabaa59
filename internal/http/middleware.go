package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/karan-lumetium/portfolio-website/internal/domain/user"
	"github.com/karan-lumetium/portfolio-website/internal/metrics"
	"github.com/karan-lumetium/portfolio-website/internal/platform/apperr"
	"github.com/karan-lumetium/portfolio-website/internal/platform/token"
)

type ctxKey string

const (
	ctxKeyUserID ctxKey = "user_id"
	ctxKeyEmail  ctxKey = "email"
	ctxKeyRole   ctxKey = "role"
)

const bearerPrefix = "Bearer "

var slogLogger = slog.Default()

func SetLogger(l *slog.Logger) {
	if l != nil {
		slogLogger = l
	}
}

// AuthMiddleware admits a request only when it carries a valid access token
// AND the token's user still exists and is active. The live re-check means a
// deactivated account loses access immediately, without token revocation.
func AuthMiddleware(tokens *token.Manager, users *user.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, bearerPrefix) {
				errorResponse(w, apperr.Unauthorized("No token provided", nil))
				return
			}

			claims, err := tokens.VerifyAccess(strings.TrimPrefix(h, bearerPrefix))
			if err != nil {
				errorResponse(w, apperr.Unauthorized("Invalid or expired token", err))
				return
			}

			u, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil || !u.IsActive {
				errorResponse(w, apperr.Unauthorized("User not found or inactive", err))
				return
			}

			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), claims)))
		})
	}
}

// OptionalAuthMiddleware attaches an identity when a valid access token is
// present and proceeds anonymously otherwise. It never rejects.
func OptionalAuthMiddleware(tokens *token.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if strings.HasPrefix(h, bearerPrefix) {
				if claims, err := tokens.VerifyAccess(strings.TrimPrefix(h, bearerPrefix)); err == nil {
					r = r.WithContext(withIdentity(r.Context(), claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin runs after AuthMiddleware and gates admin-only routes.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(ctxKeyRole).(string)
		if !ok || role != user.RoleAdmin {
			errorResponse(w, apperr.Forbidden("Admin access required", nil))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func withIdentity(ctx context.Context, claims *token.Claims) context.Context {
	ctx = context.WithValue(ctx, ctxKeyUserID, claims.UserID)
	ctx = context.WithValue(ctx, ctxKeyEmail, claims.Email)
	return context.WithValue(ctx, ctxKeyRole, claims.Role)
}

func userIDFromCtx(r *http.Request) string {
	if id, ok := r.Context().Value(ctxKeyUserID).(string); ok {
		return id
	}
	return ""
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(rw, r)

		status := rw.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}

		metrics.IncRequest(r.Method, route, status)

		slogLogger.Info("request",
			"method", r.Method,
			"path", route,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
