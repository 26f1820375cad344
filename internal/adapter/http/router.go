package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/mfcastro/contas/internal/adapter/http/handler"
	"github.com/mfcastro/contas/internal/adapter/http/middleware"
	"github.com/mfcastro/contas/internal/infrastructure/metrics"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler *handler.AccountHandler
	ItemHandler    *handler.ItemHandler
	PaymentHandler *handler.PaymentHandler
	ProductHandler *handler.ProductHandler
	CommandHandler *handler.CommandHandler
	HealthHandler  *handler.HealthHandler
	Logger         zerolog.Logger
	Metrics        *metrics.Metrics
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}
	r.Use(middleware.Recovery)

	// Operational endpoints
	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.Liveness)
		r.Get("/ready", cfg.HealthHandler.Readiness)
	}
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Delete("/{id}", cfg.AccountHandler.Delete)
			r.Post("/{id}/items", cfg.ItemHandler.Create)
			r.Post("/{id}/payments", cfg.PaymentHandler.Create)
		})

		r.Route("/items", func(r chi.Router) {
			r.Patch("/{id}", cfg.ItemHandler.Update)
			r.Delete("/{id}", cfg.ItemHandler.Delete)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Patch("/{id}", cfg.PaymentHandler.Update)
			r.Delete("/{id}", cfg.PaymentHandler.Delete)
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", cfg.ProductHandler.Create)
			r.Get("/", cfg.ProductHandler.List)
			r.Get("/{id}", cfg.ProductHandler.Get)
			r.Patch("/{id}", cfg.ProductHandler.Update)
			r.Delete("/{id}", cfg.ProductHandler.Delete)
		})

		r.Post("/commands", cfg.CommandHandler.Invoke)
	})

	return r
}
