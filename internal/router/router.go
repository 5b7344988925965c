package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"referral-platform/internal/config"
	"referral-platform/internal/handler"
	"referral-platform/internal/middleware"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	Profile *handler.ProfileHandler
	Admin   *handler.AdminHandler
}

type HealthChecker interface {
	Health(ctx context.Context) error
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers, db HealthChecker) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.Health(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Route not found"}`))
	})

	r.Route("/auth", func(auth chi.Router) {
		auth.Post("/register", h.Auth.Register)
		auth.Post("/login", h.Auth.Login)
		auth.With(authMiddleware.RequireAuth).Get("/verify", h.Auth.Verify)
		auth.Post("/logout", h.Auth.Logout)
	})

	r.Route("/profile", func(profile chi.Router) {
		profile.Use(authMiddleware.RequireAuth)
		profile.Get("/", h.Profile.Get)
		profile.Put("/update", h.Profile.Update)
		profile.Get("/dashboard", h.Profile.Dashboard)
		profile.Get("/withdrawals", h.Profile.ListWithdrawals)
		profile.Post("/withdrawals", h.Profile.CreateWithdrawal)
	})

	r.Route("/admin", func(admin chi.Router) {
		admin.Use(authMiddleware.RequireAuth, authMiddleware.RequireAdmin)
		admin.Get("/users", h.Admin.ListUsers)
		admin.Get("/audit", h.Admin.ListAudit)
	})

	return r
}
