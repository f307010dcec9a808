package main

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"learnhub/internal/cache"
	"learnhub/internal/client"
	"learnhub/internal/config"
	"learnhub/internal/editor"
	"learnhub/internal/logger"
	"learnhub/internal/middleware"
	"learnhub/internal/security"
	handlers "learnhub/internal/transport/http"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg, err := logger.New(cfg.Mode)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logg.Sync()

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logg.Fatal("Failed to connect to Redis", "addr", cfg.RedisAddr, "err", err)
	}
	logg.Info("Connected to Redis", "addr", cfg.RedisAddr)

	rateLimiter := middleware.NewRateLimiter(rdb)
	catalogCache := cache.NewCatalogCache(rdb)
	tokens := security.NewTokenManager(cfg.AccessSecret)

	authClient := client.NewAuthClient(cfg.AuthSvcUrl)
	courseClient := client.NewCourseClient(cfg.CourseSvcUrl)
	catalogClient := client.NewCatalogClient(cfg.CatalogSvcUrl)

	manager := editor.NewManager(courseClient, cfg.PreviewDir, cfg.SessionTTL, logg)
	go manager.RunReaper(context.Background(), 5*time.Minute)

	authHandler := handlers.NewAuthHandler(authClient)
	catalogHandler := handlers.NewCatalogHandler(catalogClient, catalogCache)
	platformHandler := handlers.NewPlatformHandler(catalogClient, catalogCache)
	editorHandler := handlers.NewEditorHandler(manager)

	router := handlers.NewRouter(authHandler, catalogHandler, platformHandler, editorHandler,
		rateLimiter, tokens, cfg.AllowedOrigins)

	logg.Info("learnhub gateway running", "port", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		logg.Fatal("Failed to run server", "err", err)
	}
}
