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
	"dalil/pkg/middleware"
	"dalil/pkg/server"
	contentHTTP "dalil/services/content/internal/controller/http"
	"dalil/services/content/internal/repo/persistent"
	"dalil/services/content/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const serviceName = "content"

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
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
		log.Warn("Failed to connect to redis: %v (continuing without cache)", err)
		redisClient = nil
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		jwtService:  jwt.NewService(cfg.JWTSecret),
	}, nil
}

func (a *App) Router() *gin.Engine {
	store := cache.NewStore(a.redisClient, a.log, a.cfg.PageCacheTTL)
	gate := authz.NewGate(a.db)
	recorder := audit.NewRecorder(a.db, a.log)

	newsRepo := persistent.NewNewsRepository(a.db)
	tutorialRepo := persistent.NewTutorialRepository(a.db)

	newsUseCase := usecase.NewNewsUseCase(newsRepo, gate, recorder, store, store, a.log)
	tutorialUseCase := usecase.NewTutorialUseCase(tutorialRepo, gate, recorder, store, store, a.log)

	newsHandler := contentHTTP.NewNewsHandler(newsUseCase)
	tutorialHandler := contentHTTP.NewTutorialHandler(tutorialUseCase)

	r := server.NewRouter(serviceName, a.cfg, a.log)

	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuth(a.jwtService))
	api.Use(middleware.RateLimitMiddleware(a.redisClient, 100, time.Minute))

	cached := api.Group("")
	cached.Use(cache.PageCache(store))
	{
		cached.GET("/news", newsHandler.ListNews)
		cached.GET("/news/:id", newsHandler.GetNews)
		cached.GET("/tutorials", tutorialHandler.ListTutorials)
		cached.GET("/tutorials/:id", tutorialHandler.GetTutorial)
	}

	api.POST("/news/:id/view", newsHandler.RecordView)
	api.POST("/tutorials/:id/view", tutorialHandler.RecordView)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(a.jwtService), middleware.AdminOnly(gate))
	{
		admin.GET("/news", newsHandler.AdminListNews)
		admin.GET("/news/:id", newsHandler.AdminGetNews)
		admin.POST("/news", newsHandler.CreateNews)
		admin.PUT("/news/:id", newsHandler.UpdateNews)
		admin.DELETE("/news/:id", newsHandler.DeleteNews)
		admin.PATCH("/news/:id/publish", newsHandler.TogglePublish)
		admin.PATCH("/news/:id/feature", newsHandler.ToggleFeature)

		admin.POST("/tutorials", tutorialHandler.CreateTutorial)
		admin.PUT("/tutorials/:id", tutorialHandler.UpdateTutorial)
		admin.DELETE("/tutorials/:id", tutorialHandler.DeleteTutorial)
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
