package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"cinetrack/database"
	"cinetrack/internal/cache"
	"cinetrack/internal/config"
	"cinetrack/internal/handler"
	"cinetrack/internal/middleware"
	"cinetrack/internal/repository"
	"cinetrack/internal/service"
)

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelDebug
	switch cfg.LogLevel {
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}
	defer database.Close(db)

	// Repositories
	catalogRepo := repository.NewCatalogRepo(db)
	historyRepo := repository.NewWatchHistoryRepository(db)
	mylistRepo := repository.NewMylistRepository(db)

	// Optional redis cache in front of the batched name lookup
	var names service.NameLookup = catalogRepo
	if cfg.RedisEnabled {
		nameCache, err := cache.NewNameCache(catalogRepo, cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
		if err != nil {
			log.Fatalf("could not connect to redis: %v", err)
		}
		defer nameCache.Close()
		names = nameCache
		logger.Info("movie name cache enabled", "addr", cfg.RedisAddr)
	}

	// Services
	searchSvc := service.NewSearchService(catalogRepo)
	overlaySvc := service.NewOverlayService(historyRepo, mylistRepo)
	listsSvc := service.NewListsService(historyRepo, mylistRepo, names)
	reconcileSvc := service.NewReconcileService(historyRepo, mylistRepo, catalogRepo)

	// Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))

	r.GET("/check-conn", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"message": "API is alive and database connected",
		})
	})

	api := r.Group("/api/v1")
	handler.NewSearchHandler(searchSvc, overlaySvc).RegisterRoutes(api)
	handler.NewListsHandler(listsSvc, reconcileSvc).RegisterRoutes(api)
	handler.NewMovieHandler(catalogRepo).RegisterRoutes(api)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
