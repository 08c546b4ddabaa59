package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/karan-lumetium/portfolio-website/internal/domain/blog"
	"github.com/karan-lumetium/portfolio-website/internal/domain/category"
	"github.com/karan-lumetium/portfolio-website/internal/domain/tag"
	"github.com/karan-lumetium/portfolio-website/internal/domain/user"
	"github.com/karan-lumetium/portfolio-website/internal/platform/token"
	"github.com/karan-lumetium/portfolio-website/internal/worker"
)

// response is the envelope wrapping every JSON reply.
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type Handler struct {
	userSvc     *user.Service
	blogSvc     *blog.Service
	categorySvc *category.Service
	tagSvc      *tag.Service
	tokens      *token.Manager
	viewCh      chan<- worker.PostView
	db          *sql.DB
}

func NewRouter(
	userSvc *user.Service,
	blogSvc *blog.Service,
	categorySvc *category.Service,
	tagSvc *tag.Service,
	tokens *token.Manager,
	viewCh chan<- worker.PostView,
	db *sql.DB,
) http.Handler {
	h := &Handler{
		userSvc:     userSvc,
		blogSvc:     blogSvc,
		categorySvc: categorySvc,
		tagSvc:      tagSvc,
		tokens:      tokens,
		viewCh:      viewCh,
		db:          db,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(RequestLogger)
	r.Use(CORSMiddleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.handleHealth)
		r.Get("/stats", h.handleStats)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.handleRegister)
			r.Post("/login", h.handleLogin)
			r.Post("/refresh", h.handleRefresh)

			r.Group(func(r chi.Router) {
				r.Use(AuthMiddleware(tokens, userSvc))
				r.Get("/profile", h.handleGetProfile)
				r.Put("/profile", h.handleUpdateProfile)
			})
		})

		r.Route("/blog", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(OptionalAuthMiddleware(tokens))
				r.Get("/posts", h.handleListPosts)
				r.Get("/posts/{slug}", h.handleGetPost)
			})

			r.Group(func(r chi.Router) {
				r.Use(AuthMiddleware(tokens, userSvc))
				r.Use(RequireAdmin)
				r.Post("/posts", h.handleCreatePost)
				r.Put("/posts/{id}", h.handleUpdatePost)
				r.Delete("/posts/{id}", h.handleDeletePost)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.handleListCategories)
			r.With(AuthMiddleware(tokens, userSvc), RequireAdmin).Post("/", h.handleCreateCategory)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", h.handleListTags)
			r.With(AuthMiddleware(tokens, userSvc), RequireAdmin).Post("/", h.handleCreateTag)
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, response{Success: true, Message: message, Data: data})
}

// @Summary     Health check
// @Tags        ops
// @Produce     json
// @Success     200  {object}  map[string]string
// @Router      /api/health [get]
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  "Connected",
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.db == nil || h.db.PingContext(ctx) != nil {
		status["status"] = "ERROR"
		status["database"] = "Disconnected"
		writeJSON(w, http.StatusInternalServerError, status)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// @Summary     Entity counts
// @Tags        ops
// @Produce     json
// @Success     200  {object}  map[string]int64
// @Router      /api/stats [get]
func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		errorResponse(w, sql.ErrConnDone)
		return
	}

	var users, posts, categories, tags int64
	err := h.db.QueryRowContext(r.Context(), `
        SELECT (SELECT COUNT(*) FROM users),
               (SELECT COUNT(*) FROM posts),
               (SELECT COUNT(*) FROM categories),
               (SELECT COUNT(*) FROM tags)
    `).Scan(&users, &posts, &categories, &tags)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{
		"users":      users,
		"posts":      posts,
		"categories": categories,
		"tags":       tags,
	})
}
