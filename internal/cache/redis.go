package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"luckyticket/internal/domain"
)

var tracer = otel.Tracer("luckyticket-cache")

// RedisImageCache remembers which image a user lookup resolved to.
type RedisImageCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisImageCache connects and pings Redis.
func NewRedisImageCache(ctx context.Context, addr, password string, db int, ttl time.Duration) (*RedisImageCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	return &RedisImageCache{client: client, ttl: ttl, prefix: "luckyticket"}, nil
}

func (c *RedisImageCache) Close() error {
	return c.client.Close()
}

func (c *RedisImageCache) key(userID int64) string {
	return fmt.Sprintf("%s:user_image:%d", c.prefix, userID)
}

// GetUserImage returns (nil, nil) on a miss.
func (c *RedisImageCache) GetUserImage(ctx context.Context, userID int64) (*domain.Image, error) {
	ctx, span := tracer.Start(ctx, "redis.get_user_image", trace.WithAttributes(attribute.Int64("user_id", userID)))
	defer span.End()

	data, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if err == redis.Nil {
		span.SetAttributes(attribute.Bool("cache_hit", false))
		return nil, nil
	} else if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get from cache: %w", err)
	}

	var img domain.Image
	if err := json.Unmarshal(data, &img); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to unmarshal cached image: %w", err)
	}
	span.SetAttributes(attribute.Bool("cache_hit", true))
	return &img, nil
}

func (c *RedisImageCache) SetUserImage(ctx context.Context, img *domain.Image) error {
	ctx, span := tracer.Start(ctx, "redis.set_user_image", trace.WithAttributes(attribute.Int64("user_id", img.UserID)))
	defer span.End()

	data, err := json.Marshal(img)
	if err != nil {
		return fmt.Errorf("failed to marshal image: %w", err)
	}
	if err := c.client.Set(ctx, c.key(img.UserID), data, c.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

func (c *RedisImageCache) InvalidateUser(ctx context.Context, userID int64) error {
	ctx, span := tracer.Start(ctx, "redis.invalidate_user_image", trace.WithAttributes(attribute.Int64("user_id", userID)))
	defer span.End()

	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	return nil
}
