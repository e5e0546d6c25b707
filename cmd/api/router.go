package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/crucial707/blog-api/internal/auth"
	"github.com/crucial707/blog-api/internal/config"
	"github.com/crucial707/blog-api/internal/handlers"
	"github.com/crucial707/blog-api/internal/middleware"
	"github.com/crucial707/blog-api/internal/service"
	"github.com/crucial707/blog-api/internal/store"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter wires every route against st using the settings in cfg.
func newRouter(st *store.Store, cfg config.Config, logger *slog.Logger) http.Handler {
	authenticator := auth.New([]byte(cfg.JWTSecret), time.Duration(cfg.JWTExpireHours)*time.Hour)

	authH := &handlers.AuthHandler{Users: service.NewUserService(st, authenticator)}
	postH := &handlers.PostHandler{Posts: service.NewPostService(st)}
	requireAuth := middleware.JWTMiddleware(authenticator)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.RequestLog(logger))
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSEnabled()))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(cfg.MaxBodyBytes))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handlers.JSONError(w, "Route not found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handlers.JSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	r.Get("/", handlers.Root)
	r.Get("/health", handlers.Health)
	r.Get("/ready", handlers.Ready(st))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if cfg.AuthRateLimitPerMin > 0 {
				r.Use(middleware.AuthRateLimiter(cfg.AuthRateLimitPerMin).Middleware)
			}
			r.Post("/register", authH.Register)
			r.Post("/login", authH.Login)
		})
		r.With(requireAuth).Get("/profile", authH.Profile)
	})

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", postH.ListPosts)
		r.Get("/{id}", postH.GetPost)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", postH.CreatePost)
			r.Put("/{id}", postH.UpdatePost)
			r.Delete("/{id}", postH.DeletePost)
			r.Post("/{id}/like", postH.ToggleLike)
			r.Post("/{id}/comments", postH.AddComment)
		})
	})

	return r
}
