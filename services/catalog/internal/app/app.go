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
	catalogHTTP "dalil/services/catalog/internal/controller/http"
	"dalil/services/catalog/internal/repo/persistent"
	"dalil/services/catalog/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const serviceName = "catalog"

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
		log.Warn("Failed to connect to redis: %v (continuing without cache)", err)
		redisClient = nil
	}

	s3Client, err := s3.NewClient(cfg, log)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		return nil, err
	}
	s3Client.EnsureBuckets(media.BucketProductLogos)

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		jwtService:  jwt.NewService(cfg.JWTSecret),
	}, nil
}

// Router wires repositories, use cases and handlers onto a fresh engine.
func (a *App) Router() *gin.Engine {
	store := cache.NewStore(a.redisClient, a.log, a.cfg.PageCacheTTL)
	gate := authz.NewGate(a.db)
	recorder := audit.NewRecorder(a.db, a.log)

	// Initialize repositories
	productRepo := persistent.NewProductRepository(a.db)
	reviewRepo := persistent.NewReviewRepository(a.db)

	// Initialize use cases
	ratings := usecase.NewRatingCalculator(reviewRepo, a.log)
	productUseCase := usecase.NewProductUseCase(productRepo, ratings, gate, recorder, store, store, a.s3Client, a.cfg.FacetsTTL, a.log)
	reviewUseCase := usecase.NewReviewUseCase(reviewRepo, productRepo, ratings, gate, recorder, store, a.log)

	// Initialize HTTP handlers
	productHandler := catalogHTTP.NewProductHandler(productUseCase, a.log)
	reviewHandler := catalogHTTP.NewReviewHandler(reviewUseCase)

	r := server.NewRouter(serviceName, a.cfg, a.log)

	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuth(a.jwtService))
	api.Use(middleware.RateLimitMiddleware(a.redisClient, 100, time.Minute))

	publicRoutes(api, store, productHandler, reviewHandler)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(a.jwtService))
	{
		protected.POST("/products", productHandler.SubmitProduct)
		protected.POST("/products/:id/reviews", reviewHandler.CreateReview)
		protected.PUT("/reviews/:id", reviewHandler.UpdateReview)
		protected.DELETE("/reviews/:id", reviewHandler.DeleteReview)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(a.jwtService), middleware.AdminOnly(gate))
	{
		admin.GET("/products", productHandler.AdminListProducts)
		admin.PUT("/products/:id", productHandler.UpdateProduct)
		admin.PATCH("/products/:id/featured", productHandler.SetFeatured)
		admin.DELETE("/products/:id", productHandler.DeleteProduct)
		admin.DELETE("/reviews/:id", reviewHandler.AdminDeleteReview)
	}

	return r
}

func publicRoutes(api *gin.RouterGroup, store *cache.Store, productHandler *catalogHTTP.ProductHandler, reviewHandler *catalogHTTP.ReviewHandler) {
	cached := api.Group("")
	cached.Use(cache.PageCache(store))
	{
		cached.GET("/products", productHandler.ListProducts)
		cached.GET("/products/:id", productHandler.GetProduct)
		cached.GET("/products/:id/reviews", reviewHandler.ListReviews)
	}

	// facets carry their own memo, ratings are read live after review writes,
	// views and anonymous reviews are writes
	api.GET("/facets", productHandler.GetFacets)
	api.GET("/products/:id/rating", productHandler.GetRating)
	api.POST("/products/:id/view", productHandler.RecordView)
	api.POST("/products/:id/reviews/anonymous", reviewHandler.CreateAnonymousReview)
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
