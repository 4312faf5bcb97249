package main

import (
	"time"

	"dalil/pkg/audit"
	"dalil/pkg/authz"
	"dalil/pkg/cache"
	"dalil/pkg/config"
	"dalil/pkg/database"
	"dalil/pkg/jwt"
	"dalil/pkg/logger"
	"dalil/pkg/middleware"
	"dalil/pkg/server"
	"dalil/services/moderation/handlers"
	"dalil/services/moderation/repository"
)

// @title           Moderation Service API
// @version         1.0
// @description     Admin queue of submitted tools
// @BasePath        /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if !cfg.RequireJWTSecret() {
		panic("JWT_SECRET must be set in environment variables")
	}

	log := logger.NewWithOptions(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile, Service: "moderation"})
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	// without redis nothing is cached, so there is nothing to revalidate
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Failed to connect to redis: %v (continuing without revalidation)", err)
		redisClient = nil
	}

	jwtService := jwt.NewService(cfg.JWTSecret)
	gate := authz.NewGate(db)
	store := cache.NewStore(redisClient, log, cfg.PageCacheTTL)

	moderationRepo := repository.NewModerationRepository(db)
	moderationHandler := handlers.NewModerationHandler(moderationRepo, gate, audit.NewRecorder(db, log), store, log)

	r := server.NewRouter("moderation", cfg, log)

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtService), middleware.AdminOnly(gate))
	api.Use(middleware.RateLimitMiddleware(redisClient, 300, time.Minute))
	{
		api.GET("/moderation/pending", moderationHandler.GetPendingProducts)
		api.GET("/moderation/stats", moderationHandler.GetQueueStats)
		api.POST("/moderation/review/:product_id", moderationHandler.ReviewProduct)
		api.POST("/moderation/approve/:product_id", moderationHandler.ApproveProduct)
		api.POST("/moderation/reject/:product_id", moderationHandler.RejectProduct)
	}

	srv := server.New("moderation", cfg, log, r,
		server.Closer{Name: "database", Close: func() error { return database.Close(db) }},
		server.Closer{Name: "redis", Close: func() error {
			if redisClient == nil {
				return nil
			}
			return redisClient.Close()
		}},
	)
	srv.Start()
	srv.Wait()

	if err := srv.Shutdown(); err != nil {
		panic(err)
	}
}
