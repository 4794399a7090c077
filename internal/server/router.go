// Package server assembles the HTTP router from configuration and the
// feature handlers.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/kingarthur/content-api/internal/auth"
	"github.com/kingarthur/content-api/internal/career"
	"github.com/kingarthur/content-api/internal/config"
	"github.com/kingarthur/content-api/internal/gallery"
	appMiddleware "github.com/kingarthur/content-api/internal/middleware"
	"github.com/kingarthur/content-api/internal/news"
	"github.com/kingarthur/content-api/internal/response"
)

// Handlers groups the feature handlers the router mounts.
type Handlers struct {
	Auth    *auth.Handler
	Gallery *gallery.Handler
	News    *news.Handler
	Career  *career.Handler
}

type healthData struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
}

// NewRouter builds the full route table. Mutating routes sit behind
// RequireAuth; news/career reads use OptionalAuth so a valid token widens
// visibility without being mandatory.
func NewRouter(cfg *config.Config, authSvc *auth.Service, h Handlers) http.Handler {
	requireAuth := appMiddleware.RequireAuth(authSvc)
	optionalAuth := appMiddleware.OptionalAuth(authSvc)

	globalLimiter := appMiddleware.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
	loginLimiter := appMiddleware.NewRateLimiter(5, time.Minute)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	// Swagger UI at /swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api", func(r chi.Router) {
		r.Use(globalLimiter.Limit)

		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			response.OK(w, healthData{
				Status:      "ok",
				Message:     "King Arthur Capital API is running",
				Environment: cfg.AppEnv,
				Version:     "v1",
			})
		})

		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimiter.Limit).Post("/login", h.Auth.Login)
			r.Get("/verify", h.Auth.VerifyToken)
		})

		r.Route("/gallery", func(r chi.Router) {
			r.Get("/", h.Gallery.List)
			r.Get("/meta/categories", h.Gallery.Categories)
			r.Get("/image/{id}", h.Gallery.Image)
			r.Get("/{id}", h.Gallery.Get)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", h.Gallery.Create)
				r.Put("/{id}", h.Gallery.Update)
				r.Delete("/cleanup/all", h.Gallery.Cleanup)
				r.Delete("/{id}", h.Gallery.Delete)
			})
		})

		r.Route("/news", func(r chi.Router) {
			r.Get("/image/{id}", h.News.Image)

			r.Group(func(r chi.Router) {
				r.Use(optionalAuth)
				r.Get("/", h.News.List)
				r.Get("/{id}", h.News.Get)
			})

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", h.News.Create)
				r.Put("/{id}", h.News.Update)
				r.Delete("/{id}", h.News.Delete)
			})
		})

		r.Route("/careers", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(optionalAuth)
				r.Get("/", h.Career.List)
				r.Get("/{id}", h.Career.Get)
			})

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", h.Career.Create)
				r.Put("/{id}", h.Career.Update)
				r.Delete("/{id}", h.Career.Delete)
			})
		})
	})

	return r
}
