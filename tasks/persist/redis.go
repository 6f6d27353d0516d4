package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/mazid79/MemoraTodoApp/errors"
)

var _ Gateway = (*RedisGateway)(nil)

// RedisGateway stores the task blob as a single Redis string value.
type RedisGateway struct {
	client *redis.Client
	key    string
}

// NewRedisGateway connects to Redis and verifies the connection before
// returning the gateway.
func NewRedisGateway(url, key string) (*RedisGateway, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisGateway{
		client: client,
		key:    key,
	}, nil
}

func (g *RedisGateway) Load(ctx context.Context) (string, bool, error) {
	val, err := g.client.Get(ctx, g.key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperrors.NewGatewayError("failed to load task blob", map[string]any{
			"error": err.Error(),
		})
	}

	return val, true, nil
}

func (g *RedisGateway) Save(ctx context.Context, blob string) error {
	if err := g.client.Set(ctx, g.key, blob, 0).Err(); err != nil {
		return apperrors.NewGatewayError("failed to save task blob", map[string]any{
			"error": err.Error(),
		})
	}
	return nil
}

// Close shuts down the underlying Redis connection.
func (g *RedisGateway) Close() error {
	return g.client.Close()
}
