// main.go
package main

import (
	"context"
	"log"

	"muthawwif-booking/cmd"
	"muthawwif-booking/internal/cache"
	"muthawwif-booking/internal/data/repository"
	"muthawwif-booking/internal/wire"
	"muthawwif-booking/pkg/database"
	"muthawwif-booking/pkg/mailer"
	"muthawwif-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Connect to Redis
	redisCache := cache.NewRedisCache(config.Redis, config.Booking.CacheTTL)
	if err := redisCache.Ping(context.Background()); err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisCache.Close()

	logger.Info("Redis connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Mailer for booking confirmations
	notifier := mailer.New(config.Email, logger)

	// Wire all dependencies
	app := wire.Wiring(db, repos, redisCache, redisCache, notifier, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
