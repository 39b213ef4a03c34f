package cache

import (
	"context"
	"fmt"
	"time"

	apptrash "github.com/erp/papelera/internal/application/trash"
	"github.com/erp/papelera/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewRecordLocker builds the locker selected by trash.lock_backend. The
// returned close function releases the Redis client, if any.
func NewRecordLocker(ctx context.Context, trashCfg config.TrashConfig, redisCfg config.RedisConfig, logger *zap.Logger) (apptrash.RecordLocker, func() error, error) {
	switch trashCfg.LockBackend {
	case config.LockBackendRedis:
		client, err := NewRedisClient(ctx, redisCfg)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using Redis record locker", zap.String("addr", redisCfg.Addr()))
		return NewRedisRecordLocker(client, trashCfg.LockTTL, trashCfg.LockWait, logger), client.Close, nil
	case config.LockBackendMemory, "":
		logger.Info("using in-memory record locker")
		return NewInMemoryRecordLocker(trashCfg.LockWait), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown lock backend %q", trashCfg.LockBackend)
	}
}
