package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/armyblogger/stock-tracker/internal/api/handlers"
	custommiddleware "github.com/armyblogger/stock-tracker/internal/api/middleware"
	"github.com/armyblogger/stock-tracker/internal/config"
	"github.com/armyblogger/stock-tracker/internal/service"
)

// NewRouter creates and configures the HTTP router. settingsService may be
// nil when no fernet key is configured; the settings routes are then not
// mounted and the API token must come from the environment.
func NewRouter(systemService *service.SystemService, portfolioService *service.PortfolioService, settingsService *service.SettingsService, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/positions", func(r chi.Router) {
			positionHandler := handlers.NewPositionHandler(portfolioService)
			r.Get("/", positionHandler.List)
			r.Post("/", positionHandler.Create)
			r.Get("/summary", positionHandler.Summary)
			r.Get("/status", positionHandler.Status)
			r.Post("/refresh", positionHandler.Refresh)
			r.Put("/{index}", positionHandler.Update)
			r.Delete("/{index}", positionHandler.Delete)
		})

		if settingsService != nil {
			r.Route("/settings", func(r chi.Router) {
				settingsHandler := handlers.NewSettingsHandler(settingsService)
				r.Get("/", settingsHandler.Get)
				r.Put("/token", settingsHandler.SetToken)
			})
		}
	})

	return r
}
