package internal

import (
	"context"
	"time"

	"dalil/pkg/audit"
	"dalil/pkg/authz"
	"dalil/pkg/cache"
	"dalil/pkg/config"
	"dalil/pkg/database"
	"dalil/pkg/email"
	"dalil/pkg/jwt"
	"dalil/pkg/logger"
	"dalil/pkg/middleware"
	"dalil/pkg/queue"
	"dalil/pkg/server"
	newsletterHTTP "dalil/services/newsletter/internal/controller/http"
	"dalil/services/newsletter/internal/repo/persistent"
	"dalil/services/newsletter/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const serviceName = "newsletter"

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	queueClient *queue.Client
	jwtService  *jwt.Service
	server      *server.Server

	campaignUseCase usecase.CampaignUseCase
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
		log.Warn("Failed to connect to redis: %v (continuing without rate limiting)", err)
		redisClient = nil
	}

	var queueClient *queue.Client
	if cfg.RabbitMQHost != "" {
		queueClient, err = queue.NewRabbitMQClient(cfg, log)
		if err != nil {
			log.Warn("Failed to connect to RabbitMQ: %v (campaigns will be delivered inline)", err)
			queueClient = nil
		}
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		queueClient: queueClient,
		jwtService:  jwt.NewService(cfg.JWTSecret),
	}, nil
}

func (a *App) Router() *gin.Engine {
	gate := authz.NewGate(a.db)
	recorder := audit.NewRecorder(a.db, a.log)
	sender := email.NewSender(a.cfg.ResendAPIKey, a.cfg.EmailFrom, a.log)

	// A typed nil *queue.Client must not reach the use case as a non-nil interface.
	var publisher queue.Publisher
	if a.queueClient != nil {
		publisher = a.queueClient
	}

	subscriberRepo := persistent.NewSubscriberRepository(a.db)
	campaignRepo := persistent.NewCampaignRepository(a.db)

	subscriptionUseCase := usecase.NewSubscriptionUseCase(subscriberRepo, gate, recorder, a.log)
	a.campaignUseCase = usecase.NewCampaignUseCase(campaignRepo, subscriberRepo, sender, publisher, gate, recorder, a.cfg.SiteURL, a.log)

	subscriptionHandler := newsletterHTTP.NewSubscriptionHandler(subscriptionUseCase)
	campaignHandler := newsletterHTTP.NewCampaignHandler(a.campaignUseCase)

	r := server.NewRouter(serviceName, a.cfg, a.log)

	api := r.Group("/api/v1")

	public := api.Group("/newsletter")
	public.Use(middleware.RateLimitMiddleware(a.redisClient, 10, time.Minute))
	{
		public.POST("/subscribe", subscriptionHandler.Subscribe)
		public.POST("/unsubscribe", subscriptionHandler.Unsubscribe)
		public.GET("/unsubscribe", subscriptionHandler.Unsubscribe)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(a.jwtService), middleware.AdminOnly(gate))
	{
		admin.GET("/subscribers", subscriptionHandler.ListSubscribers)
		admin.DELETE("/subscribers/:id", subscriptionHandler.DeleteSubscriber)

		admin.GET("/campaigns", campaignHandler.ListCampaigns)
		admin.POST("/campaigns", campaignHandler.CreateCampaign)
		admin.GET("/campaigns/:id", campaignHandler.GetCampaign)
		admin.PUT("/campaigns/:id", campaignHandler.UpdateCampaign)
		admin.DELETE("/campaigns/:id", campaignHandler.DeleteCampaign)
		admin.POST("/campaigns/:id/schedule", campaignHandler.ScheduleCampaign)
		admin.POST("/campaigns/:id/unschedule", campaignHandler.UnscheduleCampaign)
		admin.POST("/campaigns/:id/cancel", campaignHandler.CancelCampaign)
		admin.POST("/campaigns/:id/send", campaignHandler.SendCampaign)
	}

	return r
}

func (a *App) Run() error {
	a.server = server.New(serviceName, a.cfg, a.log, a.Router(),
		server.Closer{Name: "database", Close: func() error { return database.Close(a.db) }},
		server.Closer{Name: "redis", Close: a.closeRedis},
		server.Closer{Name: "rabbitmq", Close: a.closeQueue},
	)

	if a.queueClient != nil {
		a.log.Info("Starting campaign delivery consumer...")
		err := a.queueClient.ConsumeCampaignTasks(func(task queue.CampaignTask) error {
			_, err := a.campaignUseCase.Deliver(context.Background(), task.CampaignID)
			return err
		})
		if err != nil {
			return err
		}
	}

	a.server.Start()
	return nil
}

func (a *App) closeRedis() error {
	if a.redisClient == nil {
		return nil
	}
	return a.redisClient.Close()
}

func (a *App) closeQueue() error {
	if a.queueClient == nil {
		return nil
	}
	return a.queueClient.Close()
}

func (a *App) Wait() {
	a.server.Wait()
}

func (a *App) Shutdown() error {
	return a.server.Shutdown()
}
