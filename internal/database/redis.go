package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/myplate-diets/backend/config"
)

const redisPingTimeout = 5 * time.Second

// redisOptions prefers REDIS_URL over the host/port settings
func redisOptions(cfg *config.Config) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		opts.ClientName = "myplate-diets"
		return opts, nil
	}
	return &redis.Options{
		Addr:       fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password:   cfg.RedisPassword,
		DB:         cfg.RedisDB,
		ClientName: "myplate-diets",
	}, nil
}

// NewRedisClient connects to the classification cache. The client is closed
// again when the server does not answer a ping.
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opts.Addr, err)
	}

	log.Printf("[Database] Connected to Redis at %s (db %d)", opts.Addr, opts.DB)
	return client, nil
}
