package notify

import (
	"context"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"

	"github.com/redis/go-redis/v9"
)

// RedisStreamType is recorded as the notification type of messages sent over Redis.
const RedisStreamType = "REDIS_STREAM"

// NewRedisClient connects to a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// RedisStreamSender appends notifications to the stream <prefix><topic>.
// Streams are trimmed to roughly maxLen entries; zero disables trimming.
type RedisStreamSender struct {
	client redis.Cmdable
	prefix string
	maxLen int64
}

func NewRedisStreamSender(client redis.Cmdable, prefix string, maxLen int64) *RedisStreamSender {
	return &RedisStreamSender{
		client: client,
		prefix: prefix,
		maxLen: maxLen,
	}
}

func (s *RedisStreamSender) Type() string {
	return RedisStreamType
}

// Stream returns the stream a topic is written to.
func (s *RedisStreamSender) Stream(topic string) string {
	return s.prefix + topic
}

// Send appends msg and returns the stream entry id.
func (s *RedisStreamSender) Send(ctx context.Context, msg notification.Message) (string, error) {
	if err := msg.Validate(); err != nil {
		return "", err
	}

	body, err := newPayload(kernel.NewUUID().String(), msg, time.Now()).marshal()
	if err != nil {
		return "", fmt.Errorf("failed to marshal notification: %w", err)
	}

	id, err := s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.Stream(msg.Topic()),
		MaxLen: s.maxLen,
		Approx: s.maxLen > 0,
		Values: map[string]any{"payload": body},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("failed to append notification: %w", err)
	}

	return id, nil
}
