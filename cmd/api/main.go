package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/nugamoto/nugamoto/backend/config"
	"github.com/nugamoto/nugamoto/backend/internal/database"
	"github.com/nugamoto/nugamoto/backend/internal/logger"
	"github.com/nugamoto/nugamoto/backend/internal/server"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real deployments use the environment or secrets
	_ = godotenv.Load()

	logger.InitializeLogger(string(config.GetEnvironment()))
	defer logger.Close()

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.New(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	var opts []server.Option
	if cfg.RedisEnabled() {
		client, err := database.NewRedisClient(cfg)
		if err != nil {
			// conversions stay available without rate limiting
			logger.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
		} else {
			defer client.Close()
			opts = append(opts, server.WithRedis(client))
		}
	}

	s3cfg, err := config.NewS3Config(context.Background(), cfg)
	if err != nil {
		logger.Fatal("failed to initialize S3", zap.Error(err))
	}
	if s3cfg != nil {
		opts = append(opts, server.WithUploader(s3cfg))
	}

	srv := server.New(cfg, db, opts...)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("received signal", zap.String("signal", sig.String()))
	}

	logger.Info("shutting down server")
	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Fatal("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}
