package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iho/concilia/internal/adapter/http/handler"
	"github.com/iho/concilia/internal/adapter/http/middleware"
	"github.com/iho/concilia/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	EntryHandler     *handler.EntryHandler
	ImportHandler    *handler.ImportHandler
	ExportHandler    *handler.ExportHandler
	NormalizeHandler *handler.NormalizeHandler
	ReconcileHandler *handler.ReconcileHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Entries
		r.Route("/entries", func(r chi.Router) {
			r.Post("/", cfg.EntryHandler.Create)
			r.Get("/", cfg.EntryHandler.List)
			r.Delete("/", cfg.EntryHandler.Clear)
			r.Get("/summary", cfg.EntryHandler.Summary)
			r.Get("/accounts", cfg.EntryHandler.Accounts)
			r.Get("/{id}", cfg.EntryHandler.Get)
			r.Put("/{id}", cfg.EntryHandler.Update)
			r.Delete("/{id}", cfg.EntryHandler.Delete)
			r.Post("/{id}/duplicate", cfg.EntryHandler.Duplicate)
		})

		// Import and restore
		r.Route("/import", func(r chi.Router) {
			r.Post("/csv", cfg.ImportHandler.ImportCSV)
			r.Post("/json", cfg.ImportHandler.ImportJSON)
		})
		r.Post("/restore", cfg.ImportHandler.Restore)

		// Export and backup
		r.Route("/export", func(r chi.Router) {
			r.Get("/csv", cfg.ExportHandler.ExportCSV)
			r.Get("/template", cfg.ExportHandler.Template)
		})
		r.Get("/backup", cfg.ExportHandler.Backup)

		// Bulk passes
		r.Post("/normalize", cfg.NormalizeHandler.Normalize)
		r.Post("/reconcile/suggest", cfg.ReconcileHandler.Suggest)
	})

	return r
}
