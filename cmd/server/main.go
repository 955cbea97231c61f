package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"

	"github.com/clipdeck/clipdeck-go/internal/config"
	"github.com/clipdeck/clipdeck-go/internal/db"
	"github.com/clipdeck/clipdeck-go/internal/extractor"
	"github.com/clipdeck/clipdeck-go/internal/handler"
	"github.com/clipdeck/clipdeck-go/internal/middleware"
	"github.com/clipdeck/clipdeck-go/internal/repository"
	"github.com/clipdeck/clipdeck-go/internal/router"
	"github.com/clipdeck/clipdeck-go/internal/service"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()

	middleware.InitLogger(cfg.LogLevel, "clipdeck-api")
	logger := middleware.Logger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	handler.InitMetrics(pool)

	// Repositories
	clipRepo := repository.NewClipRepo(pool)
	likeRepo := repository.NewLikeRepo(pool)
	commentRepo := repository.NewCommentRepo(pool)
	statsRepo := repository.NewStatsRepo(pool)

	// Services
	ext := extractor.New(extractor.NewYtdlpProvider(cfg.YtdlpPath), cfg.ExtractTimeout, logger)
	clipSvc := service.NewClipService(clipRepo, ext)
	engagementSvc := service.NewEngagementService(likeRepo, commentRepo)
	feedSvc := service.NewFeedService(clipRepo, engagementSvc, likeRepo, commentRepo, cache)
	statsSvc := service.NewStatsService(statsRepo)

	// Background cache invalidation driven by Postgres NOTIFY
	worker := service.NewEngagementWorker(pool, cache)
	go worker.Start(ctx)

	verifier := middleware.NewTokenVerifier(cfg.JWTSecret)

	app := fiber.New(fiber.Config{
		AppName:      "ClipDeck API",
		ServerHeader: "ClipDeck",
	})

	router.Setup(app, &router.Handlers{
		Clip:       handler.NewClipHandler(clipSvc, feedSvc),
		Engagement: handler.NewEngagementHandler(feedSvc),
		Stats:      handler.NewStatsHandler(statsSvc),
		Health:     handler.NewHealthHandler(pool, cache.Client(), version),
	}, verifier, cfg.CORSOrigins)

	go func() {
		<-ctx.Done()
		log.Println("shutdown signal received, draining connections")
		if err := app.Shutdown(); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("ClipDeck backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
