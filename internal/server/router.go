package server

import (
	"context"
	"net/http"
	"time"

	"github.com/cloo-solutions/lexsearch/internal/api"
	"github.com/cloo-solutions/lexsearch/internal/api/handlers"
	"github.com/cloo-solutions/lexsearch/internal/api/middleware"
	"github.com/cloo-solutions/lexsearch/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const healthTimeout = 2 * time.Second

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterConfig struct {
	Logger        *zap.Logger
	DB            Pinger
	AdminToken    string
	MaxBodyBytes  int64
	SearchHandler *handlers.SearchHandler
	CaseHandler   *handlers.CaseHandler
	AdminHandler  *handlers.AdminHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog(cfg.Logger))
	r.Use(metrics.Middleware())
	r.Use(middleware.MaxBodyBytes(cfg.MaxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := cfg.DB.Ping(ctx); err != nil {
			cfg.Logger.Warn("health check failed", zap.Error(err))
			api.Error(w, http.StatusServiceUnavailable, api.CodeUnavailable, "database unreachable")
			return
		}
		api.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/search", cfg.SearchHandler.Search)
	r.Post("/search/suggestions", cfg.SearchHandler.Suggestions)
	r.Get("/cases/{id}", cfg.CaseHandler.Get)
	r.Get("/stats", cfg.CaseHandler.Stats)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminToken(cfg.AdminToken))
		r.Post("/admin/import-dataset", cfg.AdminHandler.ImportDataset)
	})

	return r
}
