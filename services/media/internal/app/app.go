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
	mediaHTTP "dalil/services/media/internal/controller/http"
	"dalil/services/media/internal/repo/persistent"
	"dalil/services/media/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const serviceName = "media"

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
		log.Warn("Failed to connect to redis: %v (rate limiting disabled)", err)
		redisClient = nil
	}

	s3Client, err := s3.NewClient(cfg, log)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		return nil, err
	}
	s3Client.EnsureBuckets(media.Buckets()...)

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
	recorder := audit.NewRecorder(a.db, a.log)

	mediaRepo := persistent.NewMediaRepository(a.db)
	mediaUseCase := usecase.NewMediaUseCase(mediaRepo, a.s3Client, gate, recorder, a.log)
	mediaHandler := mediaHTTP.NewMediaHandler(mediaUseCase, a.log)

	r := server.NewRouter(serviceName, a.cfg, a.log)

	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.AuthMiddleware(a.jwtService), middleware.AdminOnly(gate))
	admin.Use(middleware.RateLimitMiddleware(a.redisClient, 60, time.Minute))
	{
		admin.GET("/media/buckets", mediaHandler.ListBuckets)
		admin.GET("/media", mediaHandler.ListMedia)
		admin.POST("/media", mediaHandler.Upload)
		admin.GET("/media/:id", mediaHandler.GetMedia)
		admin.PUT("/media/:id/tags", mediaHandler.UpdateTags)
		admin.DELETE("/media/:id", mediaHandler.DeleteMedia)
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
