// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"bookable/config"

	"github.com/go-redis/redis/v8"
)

// LimiterClient is the Redis client backing the shared rate-limit counters.
var LimiterClient *redis.Client

// InitLimiterClient initializes the Redis client used by the rate limiter.
// Only called when REDIS_ADDR is configured; without it the limiter runs on
// its in-memory store.
func InitLimiterClient() {
	LimiterClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisLimiterDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := LimiterClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Limiter): %v", err)
	}
}

// GetLimiterClient returns the Redis client for rate-limit counters.
func GetLimiterClient() *redis.Client {
	if LimiterClient == nil {
		InitLimiterClient()
	}
	return LimiterClient
}
