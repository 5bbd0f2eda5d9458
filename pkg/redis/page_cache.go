package redis

import (
	"context"
	"time"

	"github.com/ikkim/landing-studio/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const pageKeyPrefix = "page:"

// PageCache stores rendered public pages keyed by site id.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	return &PageCache{client: client, ttl: ttl}
}

func pageKey(siteID string) string {
	return pageKeyPrefix + siteID
}

// GetPage returns the cached payload; ok is false on a miss.
func (p *PageCache) GetPage(ctx context.Context, siteID string) ([]byte, bool, error) {
	val, err := p.client.Get(ctx, pageKey(siteID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		logger.Error("Failed to read cached page", err, map[string]interface{}{
			"site_id": siteID,
		})
		return nil, false, err
	}
	return val, true, nil
}

func (p *PageCache) SetPage(ctx context.Context, siteID string, data []byte) error {
	if err := p.client.Set(ctx, pageKey(siteID), data, p.ttl).Err(); err != nil {
		logger.Error("Failed to cache page", err, map[string]interface{}{
			"site_id": siteID,
		})
		return err
	}

	logger.Debug("Page cached", map[string]interface{}{
		"site_id": siteID,
		"ttl":     p.ttl.String(),
	})
	return nil
}

func (p *PageCache) DeletePage(ctx context.Context, siteID string) error {
	return p.client.Del(ctx, pageKey(siteID)).Err()
}
