package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/ikkim/landing-studio/config"
	"github.com/ikkim/landing-studio/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// pingTimeout bounds the startup check; the page cache is optional and must
// not hold up the server for long when Redis is unreachable.
const pingTimeout = 3 * time.Second

var client *redis.Client

// Init connects the shared client used by the public page cache and fails
// when the server does not answer a PING.
func Init(cfg *config.RedisConfig) error {
	fields := map[string]interface{}{
		"addr": cfg.Addr(),
		"db":   cfg.DB,
	}

	c := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr(),
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: pingTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		logger.Error("Page cache unavailable", err, fields)
		return fmt.Errorf("redis ping %s: %w", cfg.Addr(), err)
	}

	client = c
	logger.Info("Page cache connected", fields)
	return nil
}

// GetClient returns the client set up by Init, or nil before a successful Init.
func GetClient() *redis.Client {
	return client
}

func Close() error {
	if client == nil {
		return nil
	}
	err := client.Close()
	client = nil
	return err
}
