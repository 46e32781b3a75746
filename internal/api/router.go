package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"scamradar/internal/api/handlers"
	apimiddleware "scamradar/internal/api/middleware"
	"scamradar/internal/config"
	"scamradar/internal/infrastructure/cache"
	"scamradar/pkg/logger"
)

// Router holds dependencies for the API router
type Router struct {
	config   config.Config
	handlers *handlers.Handlers
	cache    *cache.RedisCache
	logger   *logger.Logger
}

// NewRouter creates a new Router instance
func NewRouter(cfg config.Config, h *handlers.Handlers, c *cache.RedisCache, log *logger.Logger) *Router {
	return &Router{
		config:   cfg,
		handlers: h,
		cache:    c,
		logger:   log.WithComponent("router"),
	}
}

// Setup sets up the Chi router with all routes and middleware
func (r *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Core middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(apimiddleware.Logger(r.logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   r.config.CORS.AllowedOrigins,
		AllowedMethods:   r.config.CORS.AllowedMethods,
		AllowedHeaders:   r.config.CORS.AllowedHeaders,
		AllowCredentials: r.config.CORS.AllowCredentials,
		MaxAge:           r.config.CORS.MaxAge,
	}))

	// Rate limiting
	if r.config.RateLimit.Enabled && r.cache != nil {
		router.Use(apimiddleware.RateLimiter(r.cache, r.config.RateLimit))
	}

	// Health and operational endpoints
	router.Get("/health", r.handlers.Health.Check)
	router.Get("/ready", r.handlers.Health.Ready)
	router.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	router.Route("/api/v1", func(api chi.Router) {
		api.Post("/scan", r.handlers.Scan.ScanURL)
		api.Post("/scan/image", r.handlers.Scan.ScanImage)
		api.Get("/profile", r.handlers.Scan.ProfileURL)

		api.Get("/stats", r.handlers.Stats.Get)
		api.Get("/scans/recent", r.handlers.Stats.Recent)

		api.Route("/lists", func(lists chi.Router) {
			lists.Get("/whitelist", r.handlers.Lists.GetWhitelist)
			lists.Post("/whitelist", r.handlers.Lists.AddToWhitelist)
			lists.Get("/blocklist", r.handlers.Lists.GetBlocklist)
			lists.Post("/blocklist", r.handlers.Lists.AddToBlocklist)
			lists.Delete("/{list}/{id}", r.handlers.Lists.RemoveFromList)
		})
	})

	return router
}
