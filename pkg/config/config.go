package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	PushBackendLocal = "local"
	PushBackendRedis = "redis"
)

type Config struct {
	// Server
	ServerPort string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// RabbitMQ
	RabbitMQHost     string
	RabbitMQPort     string
	RabbitMQUser     string
	RabbitMQPassword string
	TriggerQueueName string

	// JWT
	JWTSecret string

	// Internal service calls (trigger ingestion). Empty disables the check.
	ServiceToken string

	// Live delivery
	PushBackend     string
	WSSendBuffer    int
	WSWriteWait     time.Duration
	WSPongWait      time.Duration
	WSAllowedOrigin string

	// Logging
	LogLevel  string
	LogFormat string
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	config := &Config{
		ServerPort: getEnv("SERVER_PORT", "8006"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "booknotify"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		RabbitMQHost:     getEnv("RABBITMQ_HOST", "localhost"),
		RabbitMQPort:     getEnv("RABBITMQ_PORT", "5672"),
		RabbitMQUser:     getEnv("RABBITMQ_USER", "guest"),
		RabbitMQPassword: getEnv("RABBITMQ_PASSWORD", "guest"),
		TriggerQueueName: getEnv("TRIGGER_QUEUE_NAME", "notification_triggers"),

		JWTSecret:    getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		ServiceToken: getEnv("SERVICE_TOKEN", ""),

		PushBackend:     getEnv("PUSH_BACKEND", PushBackendLocal),
		WSSendBuffer:    getEnvInt("WS_SEND_BUFFER", 64),
		WSWriteWait:     getEnvDuration("WS_WRITE_WAIT", 10*time.Second),
		WSPongWait:      getEnvDuration("WS_PONG_WAIT", 60*time.Second),
		WSAllowedOrigin: getEnv("WS_ALLOWED_ORIGIN", "*"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if config.PushBackend != PushBackendRedis {
		config.PushBackend = PushBackendLocal
	}
	if config.WSSendBuffer <= 0 {
		config.WSSendBuffer = 64
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
