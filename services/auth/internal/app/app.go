package internal

import (
	"time"

	"dalil/pkg/audit"
	"dalil/pkg/authz"
	"dalil/pkg/cache"
	"dalil/pkg/config"
	"dalil/pkg/database"
	"dalil/pkg/jwt"
	"dalil/pkg/logger"
	"dalil/pkg/media"
	"dalil/pkg/middleware"
	"dalil/pkg/s3"
	"dalil/pkg/server"
	authHTTP "dalil/services/auth/internal/controller/http"
	"dalil/services/auth/internal/repo/persistent"
	"dalil/services/auth/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const serviceName = "auth"

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	jwtService  *jwt.Service
	server      *server.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.NewWithOptions(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile, Service: serviceName})

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Failed to connect to redis: %v (continuing without rate limits)", err)
		// Redis is optional for auth service
		redisClient = nil
	}

	s3Client, err := s3.NewClient(cfg, log)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		return nil, err
	}
	s3Client.EnsureBuckets(media.BucketSiteAssets)

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		jwtService:  jwt.NewService(cfg.JWTSecret),
	}, nil
}

func (a *App) Router() *gin.Engine {
	gate := authz.NewGate(a.db)

	// Initialize repositories
	userRepo := persistent.NewUserRepository(a.db)

	// Initialize use cases
	authUseCase := usecase.NewAuthUseCase(
		userRepo,
		a.jwtService,
		a.s3Client,
		gate,
		audit.NewRecorder(a.db, a.log),
		cache.NewStore(a.redisClient, a.log, a.cfg.PageCacheTTL),
		a.log,
	)

	// Initialize HTTP handlers
	authHandler := authHTTP.NewAuthHandler(authUseCase)

	r := server.NewRouter(serviceName, a.cfg, a.log)

	api := r.Group("/api/v1")
	{
		public := api.Group("")
		public.Use(middleware.RateLimitMiddleware(a.redisClient, 10, time.Minute))
		public.POST("/register", authHandler.Register)
		public.POST("/login", authHandler.Login)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(a.jwtService))
		{
			protected.GET("/me", authHandler.Me)
			protected.PUT("/me", authHandler.UpdateProfile)
			protected.POST("/avatar", authHandler.UploadAvatar)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(a.jwtService), middleware.AdminOnly(gate))
		{
			admin.GET("/users", authHandler.ListUsers)
			admin.POST("/users/:id/role", authHandler.ToggleRole)
			admin.DELETE("/users/:id", authHandler.DeleteUser)
		}
	}

	return r
}

func (a *App) Run() error {
	a.server = server.New(serviceName, a.cfg, a.log, a.Router(),
		server.Closer{Name: "database", Close: func() error { return database.Close(a.db) }},
		server.Closer{Name: "redis", Close: a.closeRedis},
	)
	a.server.Start()
	return nil
}

func (a *App) closeRedis() error {
	if a.redisClient == nil {
		return nil
	}
	return a.redisClient.Close()
}

func (a *App) Wait() {
	a.server.Wait()
}

func (a *App) Shutdown() error {
	return a.server.Shutdown()
}
