package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	blogHTTP "blog-app/internal/controller/http"
	"blog-app/internal/metrics"
	"blog-app/internal/repo/persistent"
	"blog-app/internal/usecase"
	"blog-app/pkg/config"
	"blog-app/pkg/jwt"
	"blog-app/pkg/logger"
	"blog-app/pkg/middleware"
	"blog-app/pkg/queue"
	"blog-app/pkg/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "blog-app/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, queueClient *queue.Client, storageClient *storage.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize repositories
	postRepo := persistent.NewPostRepository(db)
	userRepo := persistent.NewUserRepository(db)

	// Initialize use cases
	postUseCase := usecase.NewPostUseCase(postRepo, queueClient, log)
	authUseCase := usecase.NewAuthUseCase(userRepo, jwtService, log)

	// Initialize HTTP handlers
	postHandler := blogHTTP.NewPostHandler(postUseCase, log)
	authHandler := blogHTTP.NewAuthHandler(authUseCase, log)
	uploadHandler := blogHTTP.NewUploadHandler(storageClient, log)

	// Setup router
	r := gin.Default()
	r.Use(metrics.Middleware())

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check and metrics
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/posts", postHandler.ListPosts)
	api.GET("/posts/search", postHandler.SearchPosts)
	api.GET("/posts/tag/:tag", postHandler.GetPostsByTag)
	api.GET("/posts/:slug", postHandler.GetPost)

	// Authenticated routes
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(jwtService))
	if redisClient != nil {
		window := time.Duration(cfg.RateLimitWindowSec) * time.Second
		authed.Use(middleware.RateLimitMiddleware(redisClient, cfg.RateLimitRequests, window))
	}
	{
		authed.GET("/auth/me", authHandler.Me)
		authed.GET("/posts/all", postHandler.ListOwnPosts)
		authed.POST("/posts", postHandler.CreatePost)
		authed.PUT("/posts/:slug", postHandler.UpdatePost)
		authed.DELETE("/posts/:slug", postHandler.DeletePost)
		authed.POST("/posts/:slug/like", postHandler.LikePost)
		authed.POST("/uploads/featured-image", uploadHandler.UploadFeaturedImage)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Blog service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down blog service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	// Close RabbitMQ connection
	if queueClient != nil {
		queueClient.Close()
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Blog service exited")
}
