// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"lexaid/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient holds drafting workspaces.
	CacheClient *redis.Client
	// AuthCacheClient is the dedicated client for authorization caching.
	AuthCacheClient *redis.Client
)

func newRedisClient(db int) (*redis.Client, error) {
	if config.AppConfig.RedisAddr == "" {
		return nil, ErrServiceUnavailable
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis db %d: %w", db, err)
	}
	return client, nil
}

// InitCache connects the workspace cache client.
func InitCache() error {
	client, err := newRedisClient(config.AppConfig.RedisCacheDB)
	if err != nil {
		return err
	}
	CacheClient = client
	return nil
}

// GetCacheClient returns the workspace cache client, or nil if Redis is down.
func GetCacheClient() *redis.Client {
	return CacheClient
}

// InitAuthCache connects the Redis client used for authorization caching.
func InitAuthCache() error {
	client, err := newRedisClient(config.AppConfig.RedisAuthDB)
	if err != nil {
		return err
	}
	AuthCacheClient = client
	return nil
}

// GetAuthCacheClient returns the Redis client for authorization caching, or nil.
func GetAuthCacheClient() *redis.Client {
	return AuthCacheClient
}

// CloseCaches closes whichever clients were opened.
func CloseCaches() {
	for _, c := range []*redis.Client{CacheClient, AuthCacheClient} {
		if c != nil {
			_ = c.Close()
		}
	}
}
