package server

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/myplate-diets/backend/config"
	"github.com/pageza/myplate-diets/backend/internal/api"
	"github.com/pageza/myplate-diets/backend/internal/middleware"
	"github.com/pageza/myplate-diets/backend/internal/reference"
	"github.com/pageza/myplate-diets/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	cfg    *config.Config
}

// New wires the services and routes. redisClient may be nil, which disables
// the classification cache and the rate limiter.
func New(cfg *config.Config, db *gorm.DB, ref *reference.ReferenceData, redisClient *redis.Client) *Server {
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger(), middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.CORSOrigins...))

	classifier := service.NewClassificationService(ref, redisClient)
	deps := api.Dependencies{
		DB:         db,
		Classifier: classifier,
		Recipes:    service.NewRecipeService(db, classifier),
		Tokens:     service.NewTokenService(cfg.JWTSecret),
	}
	if redisClient != nil {
		deps.ClassifyLimiter = middleware.NewClassifyRateLimiter(redisClient)
	}
	api.RegisterRoutes(router, deps)

	return &Server{
		router: router,
		cfg:    cfg,
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until SIGINT or SIGTERM and then shuts down gracefully
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:              net.JoinHostPort(s.cfg.ServerHost, s.cfg.ServerPort),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Printf("[Server] Listening on %s", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		log.Printf("[Server] Received signal: %v", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Stop(ctx)
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
