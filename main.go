package main

import (
	"context"
	"log"
	"time"

	"conference-booking/cmd"
	"conference-booking/internal/data/repository"
	"conference-booking/internal/wire"
	"conference-booking/pkg/cache"
	"conference-booking/pkg/database"
	"conference-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

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

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger, repository.WithMaxAttempts(config.Database.TxRetries))

	cleanCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := repos.Session.CleanExpiredSessions(cleanCtx); err != nil {
		logger.Warn("Failed to clean expired sessions", zap.Error(err))
	}
	cancel()

	var hotelCache *cache.Cache
	if config.Redis.Addr != "" {
		rdb, err := cache.NewRedisClient(context.Background(), config.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, hotel cache disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			hotelCache = cache.New(rdb)
			logger.Info("Redis connected", zap.String("addr", config.Redis.Addr))
		}
	}

	app := wire.Wiring(repos, db, hotelCache, config, logger)

	if err := cmd.APIServer(context.Background(), app.Router, config.App.Port, config.App.ShutdownTimeout, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return
	}

	logger.Info("Server stopped")
}
