package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"book-notify/pkg/config"
	"book-notify/pkg/jwt"
	"book-notify/pkg/logger"
	"book-notify/pkg/middleware"
	"book-notify/pkg/queue"
	"book-notify/services/notification/internal/controller/consumer"
	notificationHTTP "book-notify/services/notification/internal/controller/http"
	"book-notify/services/notification/internal/entity"
	"book-notify/services/notification/internal/gateway"
	"book-notify/services/notification/internal/registry"
	"book-notify/services/notification/internal/relay"
	"book-notify/services/notification/internal/repo/persistent"
	"book-notify/services/notification/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "book-notify/services/notification/docs" // Swagger docs
)

// Service is the wired notification service, ready to serve.
type Service struct {
	Router     *gin.Engine
	Gateway    *gateway.Gateway
	Registry   *registry.ShardedRegistry
	Consumer   *consumer.TriggerConsumer
	Subscriber *relay.Subscriber
}

// Build wires repositories, use cases, the live gateway and HTTP routes.
// redisClient may be nil when the local push backend is used.
func Build(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, queueClient *queue.Client) *Service {
	jwtService := jwt.NewService(cfg.JWTSecret)
	connections := registry.New()

	// Initialize Repository
	notificationRepo := persistent.NewNotificationRepository(db)
	preferenceRepo := persistent.NewPreferenceRepository(db)

	// Live delivery
	localPusher := gateway.NewLocalPusher(connections, log.With("component", "pusher"))
	var pusher usecase.Pusher = localPusher
	var subscriber *relay.Subscriber
	if cfg.PushBackend == config.PushBackendRedis && redisClient != nil {
		pusher = relay.NewRedisPusher(redisClient, log.With("component", "relay"))
		subscriber = relay.NewSubscriber(redisClient, localPusher, log.With("component", "relay"))
	}

	// Initialize UseCase
	dispatcher := usecase.NewDispatcher(preferenceRepo, notificationRepo, pusher, log.With("component", "dispatcher"))
	ingestionUseCase := usecase.NewIngestionUseCase(dispatcher, log)
	inboxUseCase := usecase.NewInboxUseCase(notificationRepo, log)
	preferenceUseCase := usecase.NewPreferenceUseCase(preferenceRepo, log)

	gw := gateway.New(jwtService, connections, inboxUseCase, gateway.OptionsFromConfig(cfg), log.With("component", "gateway"))

	// Initialize HTTP handlers
	notificationHandler := notificationHTTP.NewNotificationHandler(inboxUseCase, log)
	preferenceHandler := notificationHTTP.NewPreferenceHandler(preferenceUseCase, log)
	triggerHandler := notificationHTTP.NewTriggerHandler(ingestionUseCase, log)
	wsHandler := notificationHTTP.NewWebSocketHandler(gw, cfg.WSAllowedOrigin, log)

	r := gin.New()
	r.Use(gin.Logger(), middleware.Recovery(log))
	r.Use(cors.New(corsConfig(cfg.WSAllowedOrigin)))

	// Health check
	r.GET("/health", healthHandler(db, redisClient, queueClient, connections))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	// Internal routes for content services
	triggers := api.Group("/triggers")
	triggers.Use(middleware.ServiceTokenMiddleware(cfg.ServiceToken))
	{
		triggers.POST("", triggerHandler.SubmitTrigger)
		triggers.POST("/comment-reply", triggerHandler.SubmitTypedTrigger(entity.TypeCommentReply))
		triggers.POST("/new-rating", triggerHandler.SubmitTypedTrigger(entity.TypeNewRating))
		triggers.POST("/book-update", triggerHandler.SubmitTypedTrigger(entity.TypeBookUpdate))
		triggers.POST("/new-follower", triggerHandler.SubmitTypedTrigger(entity.TypeNewFollower))
	}

	// WebSocket endpoint - handles authentication internally via query parameter
	api.GET("/notifications/ws", wsHandler.HandleWebSocket)

	// Protected routes - require authentication
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.GET("/notifications/preferences", preferenceHandler.GetPreferences)
		protected.PUT("/notifications/preferences", preferenceHandler.UpdatePreferences)
		protected.GET("/users/:user_id/preferences", preferenceHandler.GetPreferences)
		protected.PUT("/users/:user_id/preferences", preferenceHandler.UpdatePreferences)

		for _, prefix := range []string{"/notifications", "/users/:user_id/notifications"} {
			inbox := protected.Group(prefix)
			inbox.GET("", notificationHandler.GetNotifications)
			inbox.GET("/unread-count", notificationHandler.GetUnreadCount)
			inbox.PUT("/read-all", notificationHandler.MarkAllRead)
			inbox.PUT("/:id/read", notificationHandler.MarkRead)
			inbox.DELETE("/read", notificationHandler.DeleteReadNotifications)
			inbox.DELETE("/:id", notificationHandler.DeleteNotification)
		}
	}

	return &Service{
		Router:     r,
		Gateway:    gw,
		Registry:   connections,
		Consumer:   consumer.NewTriggerConsumer(ingestionUseCase, log),
		Subscriber: subscriber,
	}
}

func corsConfig(allowedOrigin string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Accept", middleware.ServiceTokenHeader},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if allowedOrigin == "" || allowedOrigin == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = []string{allowedOrigin}
		cfg.AllowCredentials = true
	}
	return cfg
}

func healthHandler(db *gorm.DB, redisClient *redis.Client, queueClient *queue.Client, connections *registry.ShardedRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := gin.H{}

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			status = http.StatusServiceUnavailable
			checks["database"] = err.Error()
		} else {
			checks["database"] = "ok"
		}

		if redisClient != nil {
			if err := redisClient.Ping(ctx).Err(); err != nil {
				status = http.StatusServiceUnavailable
				checks["redis"] = err.Error()
			} else {
				checks["redis"] = "ok"
			}
		}

		if queueClient != nil {
			if depth, err := queueClient.QueueLength(); err == nil {
				checks["trigger_queue_depth"] = depth
			}
		}

		state := "ok"
		if status != http.StatusOK {
			state = "degraded"
		}
		c.JSON(status, gin.H{
			"status":      state,
			"checks":      checks,
			"connections": connections.Count(),
			"users":       connections.Users(),
		})
	}
}

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, queueClient *queue.Client) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := Build(cfg, log, db, redisClient, queueClient)

	// Start consuming trigger events from RabbitMQ
	if queueClient != nil {
		if err := queueClient.ConsumeTriggers(ctx, svc.Consumer.Handle); err != nil {
			log.Error("Error starting trigger queue consumer: %v", err)
		}
	}

	if svc.Subscriber != nil {
		go func() {
			if err := svc.Subscriber.Run(ctx); err != nil {
				log.Error("Redis relay subscriber stopped: %v", err)
			}
		}()
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: svc.Router,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Notification service starting on port %s (push backend: %s)", cfg.ServerPort, cfg.PushBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down notification service...")

	// Hijacked websocket connections are not closed by srv.Shutdown.
	svc.Gateway.Shutdown()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Close Redis connection
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	// Close RabbitMQ connection
	if queueClient != nil {
		queueClient.Close()
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	log.Info("Notification service exited")
}
