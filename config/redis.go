package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"shopping-cart/utils"
)

// ConnectRedis returns nil when no endpoint is configured or the server does
// not answer a ping; callers then run without cache.
func ConnectRedis(cfg *Config, log *utils.Logger) *redis.Client {
	if !cfg.CacheEnabled() {
		log.Info("Redis not configured, running without cache")
		return nil
	}

	var opt *redis.Options
	if cfg.RedisURL != "" {
		parsed, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Warn("Failed to parse Redis URL, running without cache", "error", err)
			return nil
		}
		opt = parsed
	} else {
		opt = &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis connection failed, running without cache", "addr", opt.Addr, "error", err)
		_ = client.Close()
		return nil
	}

	log.Info("Redis connected", "addr", opt.Addr, "db", opt.DB)
	return client
}
