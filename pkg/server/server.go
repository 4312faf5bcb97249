// Package server builds the gin engine every service starts from and runs it
// until SIGINT or SIGTERM.
package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dalil/docs"
	"dalil/pkg/config"
	"dalil/pkg/logger"
	"dalil/pkg/metrics"
	"dalil/pkg/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter returns an engine with CORS, locale detection, request metrics,
// /health, /metrics and /swagger already mounted.
func NewRouter(service string, cfg *config.Config, log *logger.Logger) *gin.Engine {
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = log.Writer()

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "Accept-Language"},
		ExposeHeaders:    []string{"Content-Length", "Content-Language", "X-Cache"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.Locale())
	r.Use(metrics.Middleware(service))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": service})
	})
	r.GET("/metrics", metrics.Handler())

	docs.SwaggerInfo.Title = "Dalil " + service + " API"
	docs.SwaggerInfo.Host = "localhost:" + cfg.ServerPort
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// Closer is released during shutdown after the HTTP server stops.
type Closer struct {
	Name  string
	Close func() error
}

type Server struct {
	service    string
	log        *logger.Logger
	httpServer *http.Server
	closers    []Closer
}

func New(service string, cfg *config.Config, log *logger.Logger, handler http.Handler, closers ...Closer) *Server {
	return &Server{
		service: service,
		log:     log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		closers: closers,
	}
}

func (s *Server) Start() {
	go func() {
		s.log.Info("%s service starting on %s", s.service, s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()
}

// Wait blocks until SIGINT or SIGTERM.
func (s *Server) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.log.Info("Shutting down %s service...", s.service)
}

// Shutdown gives in-flight requests 5 seconds, then closes every resource.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		s.log.Error("Server forced to shutdown: %v", err)
	}

	for _, c := range s.closers {
		if c.Close == nil {
			continue
		}
		if cerr := c.Close(); cerr != nil {
			s.log.Error("Error closing %s: %v", c.Name, cerr)
		}
	}

	s.log.Info("%s service exited", s.service)
	return err
}
