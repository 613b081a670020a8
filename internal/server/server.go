package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nugamoto/nugamoto/backend/config"
	"github.com/nugamoto/nugamoto/backend/internal/api"
	"github.com/nugamoto/nugamoto/backend/internal/logger"
	"github.com/nugamoto/nugamoto/backend/internal/middleware"
	"github.com/nugamoto/nugamoto/backend/internal/repository"
	"github.com/nugamoto/nugamoto/backend/internal/router"
	"github.com/nugamoto/nugamoto/backend/internal/service"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Server represents the HTTP server
type Server struct {
	cfg      *config.Config
	router   *gin.Engine
	http     *http.Server
	db       *gorm.DB
	redis    *redis.Client
	uploader service.ObjectStore
}

// Option configures optional server dependencies
type Option func(*Server)

// WithRedis enables rate limiting of the conversion endpoints
func WithRedis(client *redis.Client) Option {
	return func(s *Server) {
		s.redis = client
	}
}

// WithUploader enables the catalog export endpoint
func WithUploader(store service.ObjectStore) Option {
	return func(s *Server) {
		s.uploader = store
	}
}

// New wires repositories, services and handlers into a router
func New(cfg *config.Config, db *gorm.DB, opts ...Option) *Server {
	s := &Server{cfg: cfg, db: db}
	for _, opt := range opts {
		opt(s)
	}

	units := repository.NewUnitRepo(db)
	foods := repository.NewFoodItemRepo(db)
	recipes := repository.NewRecipeRepo(db)
	inventory := repository.NewInventoryRepo(db)

	unitService := service.NewUnitService(units)
	foodService := service.NewFoodService(foods, units)
	conversionService := service.NewConversionService(foods, units)
	recipeService := service.NewRecipeService(recipes, foods, conversionService)
	inventoryService := service.NewInventoryService(inventory, foods, conversionService, cfg.ExpiringItemsThresholdDays)

	var convertLimiter []gin.HandlerFunc
	if s.redis != nil {
		limiter := middleware.NewConversionRateLimiter(s.redis, cfg.RateLimitRequests, cfg.RateLimitWindow)
		convertLimiter = append(convertLimiter, limiter.RateLimitMiddleware())
	}

	handlers := []router.RouteRegistrar{
		api.NewUnitHandler(unitService, convertLimiter...),
		api.NewFoodItemHandler(foodService, conversionService, convertLimiter...),
		api.NewRecipeHandler(recipeService),
		api.NewInventoryHandler(inventoryService),
	}
	if s.uploader != nil {
		handlers = append(handlers, api.NewCatalogHandler(service.NewCatalogService(units, s.uploader)))
	}

	s.router = router.SetupRouter(cfg.CORSAllowedOrigins, api.NewHealthHandler(db, s.redis), handlers...)
	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves HTTP until Shutdown is called
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:              fmt.Sprintf("%s:%s", s.cfg.ServerHost, s.cfg.ServerPort),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
