package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisStore keeps each transcript in a Redis list under
// session:{id}, expiring 24 hours after the last append.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

// NewRedisStore connects to Redis using a redis:// URL.
func NewRedisStore(url string, ttl time.Duration, logger *logrus.Logger) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	return &RedisStore{
		client: redis.NewClient(opt),
		ttl:    ttl,
		logger: logger,
	}, nil
}

// Ping verifies the connection. Startup logs a warning on failure but
// does not abort: store outages are recoverable at request time.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// History returns all turns for a session in insertion order.
func (s *RedisStore) History(ctx context.Context, sessionID string) ([]Turn, error) {
	entries, err := s.client.LRange(ctx, sessionKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read transcript for session %s: %w", sessionID, err)
	}

	turns := make([]Turn, 0, len(entries))
	for _, entry := range entries {
		var turn Turn
		if err := json.Unmarshal([]byte(entry), &turn); err != nil {
			// a corrupt entry should not take out the whole transcript
			s.logger.WithError(err).WithField("session_id", sessionID).
				Warn("skipping malformed transcript entry")
			continue
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

// Append pushes turns onto the transcript list and refreshes the TTL.
func (s *RedisStore) Append(ctx context.Context, sessionID string, turns ...Turn) error {
	if len(turns) == 0 {
		return nil
	}

	payloads := make([]interface{}, len(turns))
	for i, turn := range turns {
		data, err := json.Marshal(turn)
		if err != nil {
			return fmt.Errorf("encode turn: %w", err)
		}
		payloads[i] = data
	}

	key := sessionKey(sessionID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, payloads...)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append to transcript for session %s: %w", sessionID, err)
	}
	return nil
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}
