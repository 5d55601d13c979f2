package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const connectTimeout = 5 * time.Second

// RedisGateway implements Gateway on a Redis instance. Each path maps to
// one key under the namespace; writes publish a notification on a
// per-collection channel so Subscribe sees every change.
type RedisGateway struct {
	client    *redis.Client
	namespace string
	logger    *slog.Logger
}

// NewRedisGateway connects to the Redis instance at redisURL and verifies
// the connection before returning.
func NewRedisGateway(redisURL, namespace string, logger *slog.Logger) (*RedisGateway, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisGateway{
		client:    client,
		namespace: namespace,
		logger:    logger,
	}, nil
}

func (g *RedisGateway) key(path string) string {
	return g.namespace + ":" + path
}

func (g *RedisGateway) channel(path string) string {
	return g.namespace + ":changes:" + root(path)
}

func (g *RedisGateway) Get(ctx context.Context, path string) ([]byte, error) {
	data, err := g.client.Get(ctx, g.key(path)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	return data, nil
}

func (g *RedisGateway) Set(ctx context.Context, path string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := g.client.Set(ctx, g.key(path), data, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	g.notify(ctx, path)
	return nil
}

func (g *RedisGateway) Update(ctx context.Context, path string, partial map[string]any) error {
	existing, err := g.Get(ctx, path)
	if err != nil {
		return err
	}

	merged := map[string]any{}
	if existing != nil {
		if err := json.Unmarshal(existing, &merged); err != nil {
			return fmt.Errorf("update %s: existing value is not an object: %w", path, err)
		}
	}
	for k, v := range partial {
		merged[k] = v
	}

	return g.Set(ctx, path, merged)
}

func (g *RedisGateway) Delete(ctx context.Context, path string) error {
	if err := g.client.Del(ctx, g.key(path)).Err(); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	g.notify(ctx, path)
	return nil
}

func (g *RedisGateway) Push(_ context.Context, _ string) (string, error) {
	return uuid.NewString(), nil
}

func (g *RedisGateway) List(ctx context.Context, path string) (map[string][]byte, error) {
	pattern := g.key(path) + "/*"
	prefix := g.key(path) + "/"

	result := make(map[string][]byte)
	var cursor uint64
	for {
		keys, next, err := g.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", path, err)
		}
		for _, k := range keys {
			data, err := g.client.Get(ctx, k).Bytes()
			if err == redis.Nil {
				continue // deleted between scan and get
			}
			if err != nil {
				return nil, fmt.Errorf("list %s: %w", path, err)
			}
			result[k[len(prefix):]] = data
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return result, nil
}

func (g *RedisGateway) Subscribe(ctx context.Context, path string, onChange func()) (func(), error) {
	sub := g.client.Subscribe(ctx, g.channel(path))
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", path, err)
	}

	go func() {
		for range sub.Channel() {
			onChange()
		}
	}()

	return func() {
		if err := sub.Close(); err != nil {
			g.logger.Warn("close subscription", "path", path, "error", err)
		}
	}, nil
}

// notify publishes a change notification. Failures are logged, not
// surfaced: a missed notification only delays a dashboard refresh.
func (g *RedisGateway) notify(ctx context.Context, path string) {
	if err := g.client.Publish(ctx, g.channel(path), path).Err(); err != nil {
		g.logger.Warn("publish change", "path", path, "error", err)
	}
}

// Close releases the underlying Redis connection.
func (g *RedisGateway) Close() error {
	return g.client.Close()
}
