package rate

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// checkAndConsume must deny without incrementing and must refresh the window
// TTL on every admitted attempt (sliding window). One script keeps the
// read-decide-write sequence atomic on the server.
var checkAndConsumeScript = redis.NewScript(`
local count = tonumber(redis.call('GET', KEYS[1]) or '0')
if count >= tonumber(ARGV[1]) then
  return 0
end
redis.call('INCR', KEYS[1])
redis.call('PEXPIRE', KEYS[1], ARGV[2])
return 1
`)

// RedisStore is the multi-instance [Store]: attempt counters live in Redis so
// several application nodes share one budget per identifier. Window expiry is
// delegated to key TTLs.
type RedisStore struct {
	redis  redis.UniversalClient
	prefix string
}

// NewRedisStore creates a Redis store. prefix namespaces gate counters away
// from other application keys.
func NewRedisStore(redisClient redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "pg"
	}
	return &RedisStore{
		redis:  redisClient,
		prefix: prefix,
	}
}

func (s *RedisStore) key(identifier string) string {
	return s.prefix + ":" + identifier
}

// CheckAndConsume implements [Store].
func (s *RedisStore) CheckAndConsume(ctx context.Context, identifier string, maxAttempts int, window time.Duration) (bool, error) {
	res, err := checkAndConsumeScript.Run(
		ctx,
		s.redis,
		[]string{s.key(identifier)},
		maxAttempts,
		window.Milliseconds(),
	).Int64()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return res == 1, nil
}

// Clear implements [Store].
func (s *RedisStore) Clear(ctx context.Context, identifier string) error {
	if err := s.redis.Del(ctx, s.key(identifier)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
