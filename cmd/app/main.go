package main

import (
	"blog-app/internal/app"
	"blog-app/pkg/cache"
	"blog-app/pkg/config"
	"blog-app/pkg/database"
	"blog-app/pkg/logger"
	"blog-app/pkg/queue"
	"blog-app/pkg/storage"
)

// @title           Blog API
// @version         1.0
// @description     Blog publishing platform: posts, slugs, full-text search and view counters.

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWTSecret == "" {
		panic("JWT_SECRET must be set in environment variables")
	}

	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Redis unavailable, rate limiting disabled: %v", err)
		redisClient = nil
	}

	var queueClient *queue.Client
	if cfg.RabbitMQHost != "" {
		queueClient, err = queue.NewRabbitMQClient(cfg, log)
		if err != nil {
			log.Warn("RabbitMQ unavailable, publish notifications disabled: %v", err)
			queueClient = nil
		}
	}

	var storageClient *storage.Client
	if cfg.AWSAccessKeyID != "" {
		storageClient, err = storage.NewClient(cfg)
		if err != nil {
			log.Warn("S3 unavailable, uploads disabled: %v", err)
			storageClient = nil
		}
	}

	app.Run(cfg, log, db, redisClient, queueClient, storageClient)
}
