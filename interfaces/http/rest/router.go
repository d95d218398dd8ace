package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"lineage-backend/infrastructure/config"
	"lineage-backend/interfaces/http/rest/handlers"
	"lineage-backend/interfaces/http/rest/middleware"
	"lineage-backend/pkg/auth"
	pkgerrors "lineage-backend/pkg/errors"
	"lineage-backend/pkg/observability"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg          *config.Config
	splitHandler *handlers.SplitHandler
	pruneHandler *handlers.PruneHandler
	metrics      *observability.Collector
	logger       *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	splitHandler *handlers.SplitHandler,
	pruneHandler *handlers.PruneHandler,
	metrics *observability.Collector,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:          cfg,
		splitHandler: splitHandler,
		pruneHandler: pruneHandler,
		metrics:      metrics,
		logger:       logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(pkgerrors.NewErrorHandler(rt.logger, rt.cfg.IsDevelopment()).Middleware)
	router.Use(middleware.Logger(rt.logger))
	if rt.cfg.EnableMetrics {
		router.Use(middleware.Metrics(rt.metrics))
	}

	// CORS configuration
	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   rt.cfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	if rt.cfg.EnableMetrics {
		router.Handle("/metrics", rt.metrics.Handler())
	}

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		if rt.cfg.EnableAuth {
			validator, err := auth.NewJWTValidator(auth.JWTConfig{
				SecretKey: rt.cfg.JWTSecret,
				Issuer:    rt.cfg.JWTIssuer,
			})
			if err != nil {
				rt.logger.Fatal("invalid JWT configuration", zap.Error(err))
			}
			r.Use(middleware.Authenticate(validator, rt.logger))
		}

		r.Route("/split", func(r chi.Router) {
			r.Post("/generations", rt.splitHandler.SplitByGenerations)
			r.Post("/branches", rt.splitHandler.SplitByBranches)
		})

		r.Route("/canvas", func(r chi.Router) {
			r.Post("/prune", rt.pruneHandler.Prune)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	// Stateless service; ready as soon as it is serving
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
