// Package bridge feeds session lifecycle events into Redis Streams so
// operators can audit and replay what happened to each robot.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/robot-guidance/server/internal/events"
)

const sessionStream = "robot:sessions"

// RedisPublisher appends session events to a capped Redis stream.
type RedisPublisher struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisPublisher connects to Redis and verifies the connection with a
// ping before returning.
func NewRedisPublisher(redisURL string, logger *zap.Logger) (*RedisPublisher, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	logger.Info("Connected to Redis")
	return &RedisPublisher{client: client, logger: logger}, nil
}

// Publish implements events.Sink. Failures are logged and dropped; the
// audit stream never blocks or kills a robot session.
func (r *RedisPublisher) Publish(ctx context.Context, ev events.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		r.logger.Error("Failed to encode session event", zap.Error(err))
		return
	}
	go func() {
		err := r.client.XAdd(ctx, &redis.XAddArgs{
			Stream: sessionStream,
			MaxLen: 50000,
			Approx: true,
			Values: map[string]interface{}{
				"session_id":  ev.SessionID,
				"type":        string(ev.Type),
				"remote_addr": ev.RemoteAddr,
				"timestamp":   ev.Timestamp,
				"payload":     string(payload),
			},
		}).Err()
		if err != nil {
			r.logger.Warn("Failed to publish session event", zap.Error(err))
		}
	}()
}

// Close releases the Redis connection.
func (r *RedisPublisher) Close() error {
	return r.client.Close()
}
