//go:build integration

package persist

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedisTestcontainer starts a throwaway Redis and returns a gateway
// bound to a key unique to the calling test.
func setupRedisTestcontainer(t *testing.T) (*RedisGateway, func()) {
	ctx := context.Background()

	key := fmt.Sprintf("test_blob_%s_%d", t.Name(), time.Now().UnixNano())

	redisContainer, err := redis.Run(ctx, "redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort("6379/tcp").WithStartupTimeout(30*time.Second),
			wait.ForLog("Ready to accept connections").WithOccurrence(1).WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Skipf("Failed to start Redis testcontainer: %v", err)
	}

	redisURL, err := redisContainer.ConnectionString(ctx)
	if err != nil {
		// Fallback to manual construction
		host, hostErr := redisContainer.Host(ctx)
		mappedPort, portErr := redisContainer.MappedPort(ctx, "6379/tcp")
		if hostErr != nil || portErr != nil {
			redisContainer.Terminate(ctx)
			t.Fatalf("Failed to get Redis connection details: %v / %v / %v", err, hostErr, portErr)
		}
		redisURL = fmt.Sprintf("redis://%s:%s", host, mappedPort.Port())
	}
	redisURL += "/1"

	t.Logf("Redis container started at: %s (key: %s)", redisURL, key)

	var gw *RedisGateway
	maxRetries := 5
	for i := 0; i < maxRetries; i++ {
		gw, err = NewRedisGateway(redisURL, key)
		if err == nil {
			break
		}
		if i < maxRetries-1 {
			t.Logf("Failed to connect to Redis, retrying... (%d/%d): %v", i+1, maxRetries, err)
			time.Sleep(time.Duration(i+1) * 500 * time.Millisecond)
		}
	}

	if gw == nil {
		redisContainer.Terminate(ctx)
		t.Fatalf("Failed to create working Redis gateway after %d retries: %v", maxRetries, err)
	}

	cleanup := func() {
		ctx := context.Background()
		gw.client.Del(ctx, key)
		gw.Close()
		if terminateErr := redisContainer.Terminate(ctx); terminateErr != nil {
			t.Logf("Failed to terminate container: %v", terminateErr)
		}
	}

	return gw, cleanup
}
