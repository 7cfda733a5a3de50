// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"fitbook/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client (facility metadata and the like).
	CacheClient *redis.Client
	// AuthCacheClient is the dedicated client for authorization caching.
	AuthCacheClient *redis.Client
	// BookingCacheClient holds in-flight booking sessions.
	BookingCacheClient *redis.Client
)

func newClient(db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (db %d): %v", db, err)
	}
	return client
}

// InitRedis initializes every Redis client the portal uses.
func InitRedis() {
	CacheClient = newClient(config.AppConfig.RedisCacheDB)
	AuthCacheClient = newClient(config.AppConfig.RedisAuthDB)
	BookingCacheClient = newClient(config.AppConfig.RedisBookingDB)
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		CacheClient = newClient(config.AppConfig.RedisCacheDB)
	}
	return CacheClient
}

// GetAuthCacheClient returns the Redis client for authorization caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		AuthCacheClient = newClient(config.AppConfig.RedisAuthDB)
	}
	return AuthCacheClient
}

// GetBookingCacheClient returns the Redis client holding booking sessions.
func GetBookingCacheClient() *redis.Client {
	if BookingCacheClient == nil {
		BookingCacheClient = newClient(config.AppConfig.RedisBookingDB)
	}
	return BookingCacheClient
}
