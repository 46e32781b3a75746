package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"scamradar/internal/api"
	"scamradar/internal/api/handlers"
	"scamradar/internal/config"
	"scamradar/internal/domain/services"
	"scamradar/internal/domain/services/ai"
	"scamradar/internal/infrastructure/cache"
	"scamradar/internal/infrastructure/database"
	"scamradar/internal/infrastructure/database/repository"
	"scamradar/internal/monitoring"
	"scamradar/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var log *logger.Logger
	if cfg.App.Environment == "production" {
		log = logger.NewProduction()
	} else {
		log = logger.NewDevelopment()
	}
	logger.SetGlobal(log)

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Msg("starting ScamRadar")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize infrastructure
	db, redisCache := initInfrastructure(ctx, cfg, log)
	defer func() {
		if db != nil {
			db.Close()
		}
		if redisCache != nil {
			redisCache.Close()
		}
	}()

	// Initialize repositories
	var reputationRepo *repository.ReputationRepository
	var scanRepo *repository.ScanRepository
	if db != nil {
		reputationRepo = repository.NewReputationRepository(db.Pool())
		scanRepo = repository.NewScanRepository(db.Pool())
		log.Info().Msg("repositories initialized with database")
	} else {
		log.Warn().Msg("running without database - reputation lists and scan history unavailable")
	}

	// Reputation lookups and image pattern rules share the same store
	var store services.ReputationStore
	if reputationRepo != nil {
		store = reputationRepo
	}
	reputation := services.NewReputationService(store, nil, log)
	patterns := services.NewPatternProvider(store, nil, log)

	// Content judge (page fetch + LLM classification)
	fetcherOpts := []ai.FetcherOption{}
	if cfg.Fetcher.Timeout > 0 {
		fetcherOpts = append(fetcherOpts, ai.WithHTTPClient(&http.Client{Timeout: cfg.Fetcher.Timeout}))
	}
	if cfg.Fetcher.UserAgent != "" {
		fetcherOpts = append(fetcherOpts, ai.WithUserAgent(cfg.Fetcher.UserAgent))
	}
	if cfg.Fetcher.MaxBodyChars > 0 {
		fetcherOpts = append(fetcherOpts, ai.WithMaxBodyChars(cfg.Fetcher.MaxBodyChars))
	}
	fetcher := ai.NewFetcher(log, fetcherOpts...)

	var judgeClient ai.ChatClient
	if cfg.AI.Judge.Enabled {
		judgeClient = ai.NewClient(ai.ClientConfig{
			Endpoint: cfg.AI.Judge.Endpoint,
			APIKey:   cfg.AI.Judge.APIKey,
			Model:    cfg.AI.Judge.Model,
			Timeout:  cfg.AI.Judge.Timeout,
		}, log)
		log.Info().Str("model", cfg.AI.Judge.Model).Msg("content judge enabled")
	} else {
		log.Warn().Msg("content judge disabled - URL verdicts fall back to heuristics")
	}
	judge := ai.NewContentJudge(judgeClient, fetcher, nil, log)

	// Image classifier (vision model + pattern fallback)
	var visionClient ai.ChatClient
	if cfg.AI.Vision.Enabled {
		visionClient = ai.NewClient(ai.ClientConfig{
			Endpoint: cfg.AI.Vision.Endpoint,
			APIKey:   cfg.AI.Vision.APIKey,
			Model:    cfg.AI.Vision.Model,
			Timeout:  cfg.AI.Vision.Timeout,
		}, log)
		log.Info().Str("model", cfg.AI.Vision.Model).Msg("vision judge enabled")
	}
	vision := ai.NewVisionJudge(visionClient, log)
	classifier := services.NewImageClassifier(vision, patterns, log)

	// Fusion layer
	var recorder services.ScanRecorder
	if scanRepo != nil {
		recorder = scanRepo
	}
	analyzer := services.NewAnalyzer(services.AnalyzerConfig{
		FetchedWeight:    cfg.Scoring.FetchedWeight,
		UnfetchedWeight:  cfg.Scoring.UnfetchedWeight,
		OverrideScore:    cfg.Scoring.OverrideScore,
		SafeThreshold:    cfg.Scoring.SafeThreshold,
		CautionThreshold: cfg.Scoring.CautionThreshold,
		MaxReasons:       cfg.Scoring.MaxReasons,
		VerdictCacheTTL:  cfg.Scoring.VerdictCacheTTL,
		MaxImageBytes:    cfg.Scoring.MaxImageBytes,
	}, reputation, judge, classifier, recorder, redisCache, log)
	log.Info().Msg("analyzer initialized")

	metrics := monitoring.NewMetrics()

	// Initialize handlers and router
	h := handlers.NewHandlers(handlers.Dependencies{
		Analyzer:   analyzer,
		Cache:      redisCache,
		DB:         db,
		Scans:      scanRepo,
		Reputation: reputationRepo,
		Metrics:    metrics,
		Logger:     log,
	})

	router := api.NewRouter(*cfg, h, redisCache, log)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().
			Str("addr", httpServer.Addr).
			Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("shutdown complete")
}

// initInfrastructure initializes database and cache connections. Both are
// optional: the service degrades to heuristics-only operation without them.
func initInfrastructure(ctx context.Context, cfg *config.Config, log *logger.Logger) (*database.PostgresDB, *cache.RedisCache) {
	var db *database.PostgresDB
	if cfg.Database.Enabled {
		var err error
		db, err = database.NewPostgres(ctx, cfg.Database, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to PostgreSQL, continuing without database")
			db = nil
		}
	}

	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		var err error
		redisCache, err = cache.NewRedis(ctx, cfg.Redis, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without verdict cache")
			redisCache = nil
		}
	}

	return db, redisCache
}
