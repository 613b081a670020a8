package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/nugamoto/nugamoto/backend/config"
	"github.com/nugamoto/nugamoto/backend/internal/database"
	"github.com/nugamoto/nugamoto/backend/internal/logger"
	"github.com/nugamoto/nugamoto/backend/internal/seed"
	"go.uber.org/zap"
)

func main() {
	file := flag.String("file", "", "seed from this YAML file instead of the built-in catalog")
	flag.Parse()

	_ = godotenv.Load()
	logger.InitializeLogger(string(config.GetEnvironment()))
	defer logger.Close()

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

	var cat *seed.Catalog
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			logger.Fatal("failed to read seed file", zap.String("file", *file), zap.Error(err))
		}
		cat, err = seed.ParseCatalog(data)
		if err != nil {
			logger.Fatal("invalid seed file", zap.String("file", *file), zap.Error(err))
		}
	} else {
		cat, err = seed.DefaultCatalog()
		if err != nil {
			logger.Fatal("invalid built-in catalog", zap.Error(err))
		}
	}

	if _, err := seed.Run(context.Background(), db, cat); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
}
