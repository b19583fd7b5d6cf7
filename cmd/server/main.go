// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hypevault/backend-go/internal/api"
	"github.com/hypevault/backend-go/internal/cache"
	"github.com/hypevault/backend-go/internal/config"
	"github.com/hypevault/backend-go/internal/metrics"
	"github.com/hypevault/backend-go/internal/repository/postgres"
	"github.com/hypevault/backend-go/internal/service"
	"github.com/hypevault/backend-go/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	summaryCache, err := cache.NewSummaryCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("summary cache unavailable, running without it")
		summaryCache = cache.NewNoopSummaryCache()
	}

	converter := metrics.NewConverter(map[string]float64{
		metrics.CurrencyUSD: cfg.Rates.USDPerGBP,
		metrics.CurrencyEUR: cfg.Rates.EURPerGBP,
	})
	engine := metrics.NewEngine(converter)

	itemRepo := postgres.NewItemRepository(db)
	tagRepo := postgres.NewTagRepository(db)

	services := &api.Services{
		InventoryService: service.NewInventoryService(itemRepo, summaryCache, engine),
		TagService:       service.NewTagService(tagRepo),
	}

	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
