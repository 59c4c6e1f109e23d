package main

import (
	"book-notify/pkg/cache"
	"book-notify/pkg/config"
	"book-notify/pkg/database"
	"book-notify/pkg/logger"
	"book-notify/pkg/queue"
	notificationApp "book-notify/services/notification/internal/app"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// @title           Book Notify API
// @version         1.0
// @description     Real-time notification delivery for the book platform
// @host            localhost:8006
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func init() {
	gin.SetMode(gin.ReleaseMode)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.NewWithConfig(cfg.LogLevel, cfg.LogFormat, nil)
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	// Redis is only required by the relay push backend.
	var redisClient *redis.Client
	if cfg.PushBackend == config.PushBackendRedis {
		redisClient, err = cache.NewRedisClient(cfg)
		if err != nil {
			log.Error("Failed to connect to redis: %v", err)
			panic(err)
		}
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Warn("RabbitMQ unavailable, trigger ingestion limited to HTTP: %v", err)
		queueClient = nil
	}

	notificationApp.Run(cfg, log, db, redisClient, queueClient)
}
