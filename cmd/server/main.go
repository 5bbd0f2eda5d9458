package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ikkim/landing-studio/config"
	"github.com/ikkim/landing-studio/internal/app/controller"
	"github.com/ikkim/landing-studio/internal/app/repository"
	"github.com/ikkim/landing-studio/internal/app/service"
	"github.com/ikkim/landing-studio/internal/clone"
	"github.com/ikkim/landing-studio/internal/db"
	"github.com/ikkim/landing-studio/internal/middleware"
	"github.com/ikkim/landing-studio/internal/router"
	"github.com/ikkim/landing-studio/internal/scheduler"
	"github.com/ikkim/landing-studio/internal/storage"
	"github.com/ikkim/landing-studio/internal/storefront"
	"github.com/ikkim/landing-studio/internal/tracking"
	ws "github.com/ikkim/landing-studio/internal/websocket"
	"github.com/ikkim/landing-studio/pkg/logger"
	"github.com/ikkim/landing-studio/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	logFormat := "json"
	if cfg.IsDevelopment() {
		logLevel = "debug"
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: cfg.IsDevelopment(),
	})

	logger.Info("Starting Landing Studio server", map[string]interface{}{
		"environment":     cfg.Server.Environment,
		"port":            cfg.Server.Port,
		"public_base_url": cfg.Server.PublicBaseURL,
		"log_level":       logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Optional collaborators
	opts := service.SiteServiceOptions{
		Backend: storefront.BackendParams{
			APIKey:           cfg.Storefront.APIKey,
			AuthDomain:       cfg.Storefront.AuthDomain,
			ProjectID:        cfg.Storefront.ProjectID,
			AppID:            cfg.Storefront.AppID,
			SDKURL:           cfg.Storefront.SDKURL,
			OrdersCollection: cfg.Storefront.OrdersCollection,
		},
		StoreMaxBytes: cfg.Clone.StoreMaxBytes,
	}

	if cfg.Redis.Enabled() {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Page cache disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			opts.Cache = redis.NewPageCache(redis.GetClient(), cfg.Redis.PageTTL)
			defer func() {
				if err := redis.Close(); err != nil {
					logger.Error("Failed to close Redis connection", err)
				}
			}()
		}
	}

	var presigner controller.ImagePresigner
	if cfg.S3.Enabled() {
		s3Storage := storage.NewS3Storage(
			cfg.S3.Region,
			cfg.S3.Bucket,
			cfg.S3.AccessKeyID,
			cfg.S3.SecretAccessKey,
			cfg.S3.BaseURL,
		)
		opts.Publisher = s3Storage
		presigner = s3Storage
	} else {
		logger.Info("S3 not configured; static mirroring and uploads disabled")
	}

	// Live metrics hub
	hub := ws.NewHub()
	go hub.Run()
	defer hub.Stop()

	// Repositories
	siteRepo := repository.NewSiteRepository(db.GetDB())
	metricRepo := repository.NewMetricRepository(db.GetDB())

	// Services
	fetcher := clone.NewFetcher(cfg.Clone.Timeout)
	injector := tracking.NewInjector(cfg.Server.PublicBaseURL)

	siteService := service.NewSiteService(siteRepo, metricRepo, fetcher, injector, opts)
	cloneService := service.NewCloneService(fetcher, cfg.Clone.PreviewMaxBytes)
	metricsService := service.NewMetricsService(siteRepo, metricRepo, hub)

	// Metrics retention
	retention := scheduler.NewRetentionScheduler(metricsService, cfg.Metrics.RetentionCron, cfg.Metrics.RetentionDays)
	if err := retention.Start(); err != nil {
		logger.Error("Failed to start metrics retention scheduler", err)
	} else {
		defer retention.Stop()
	}

	// Controllers
	controllers := router.Controllers{
		Site:      controller.NewSiteController(siteService, metricsService, cfg.Server.PublicBaseURL),
		Generator: controller.NewGeneratorController(),
		Clone:     controller.NewCloneController(cloneService),
		Metrics:   controller.NewMetricsController(metricsService),
		Public:    controller.NewPublicController(siteService),
		Upload:    controller.NewUploadController(presigner),
		Live:      controller.NewLiveController(siteService, hub, cfg.CORS.AllowedOrigins),
	}

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	engine := router.NewRouter(controllers, authMiddleware, cfg).Setup()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}

	logger.Info("Server stopped successfully")
}
