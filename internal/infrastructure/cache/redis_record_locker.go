package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erp/papelera/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lock re-acquired by someone else is never released by us
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisRecordLocker serializes work per key across service instances with
// SET NX PX locks
type RedisRecordLocker struct {
	client redis.UniversalClient
	ttl    time.Duration
	wait   time.Duration
	retry  time.Duration
	logger *zap.Logger
}

// NewRedisRecordLocker creates a locker on an existing client. ttl bounds how
// long a crashed holder blocks the key.
func NewRedisRecordLocker(client redis.UniversalClient, ttl, wait time.Duration, logger *zap.Logger) *RedisRecordLocker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisRecordLocker{
		client: client,
		ttl:    ttl,
		wait:   wait,
		retry:  25 * time.Millisecond,
		logger: logger.Named("locker"),
	}
}

// Lock acquires key, polling until the configured wait elapses
func (l *RedisRecordLocker) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)
	backoff := l.retry

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: acquire %s: %w", shared.ErrUnavailable, key, err)
		}
		if ok {
			return l.unlocker(key, token), nil
		}
		if !time.Now().Before(deadline) {
			return nil, shared.ErrConcurrencyConflict.Withf("%s is busy, retry later", key)
		}

		t := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
		if backoff < 200*time.Millisecond {
			backoff *= 2
		}
	}
}

func (l *RedisRecordLocker) unlocker(key, token string) func() {
	return func() {
		// the caller's context may already be cancelled
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		n, err := releaseScript.Run(ctx, l.client, []string{key}, token).Int()
		switch {
		case err != nil && !errors.Is(err, redis.Nil):
			l.logger.Warn("failed to release record lock", zap.String("key", key), zap.Error(err))
		case n == 0:
			l.logger.Warn("record lock expired before release", zap.String("key", key), zap.Duration("ttl", l.ttl))
		}
	}
}
