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
	analyticsHTTP "dalil/services/analytics/internal/controller/http"
	"dalil/services/analytics/internal/repo/persistent"
	"dalil/services/analytics/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const serviceName = "analytics"

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

	analyticsRepo := persistent.NewAnalyticsRepository(a.db)
	activityRepo := persistent.NewActivityRepository(a.db)
	settingsRepo := persistent.NewSettingsRepository(a.db)

	analyticsUseCase := usecase.NewAnalyticsUseCase(analyticsRepo, activityRepo, gate, a.log)
	settingsUseCase := usecase.NewSettingsUseCase(settingsRepo, gate, recorder, store, a.log)

	analyticsHandler := analyticsHTTP.NewAnalyticsHandler(analyticsUseCase)
	settingsHandler := analyticsHTTP.NewSettingsHandler(settingsUseCase)

	r := server.NewRouter(serviceName, a.cfg, a.log)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(a.redisClient, 100, time.Minute))

	cached := api.Group("")
	cached.Use(cache.PageCache(store))
	{
		cached.GET("/settings", settingsHandler.ListSettings)
		cached.GET("/settings/:key", settingsHandler.GetSetting)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(a.jwtService), middleware.AdminOnly(gate))
	{
		admin.GET("/dashboard", analyticsHandler.GetDashboard)
		admin.GET("/activity-logs", analyticsHandler.ListActivity)
		admin.GET("/settings", settingsHandler.ListSettings)
		admin.PUT("/settings/:key", settingsHandler.UpsertSetting)
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
