package service

import (
	"context"
	"time"
	"wellness_backend/internal/model"
	"wellness_backend/internal/util"
	"wellness_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// UserLocker 针对单个用户写操作的短时互斥
type UserLocker interface {
	// Acquire 成功时返回释放函数；锁被占用时返回 util.ErrWriteInProgress
	Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error)
}

// releaseScript 仅当值仍是自己的 token 时删除，GET 与 DEL 在 Redis 内原子执行
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker 基于 SETNX 的尽力而为锁，Redis 不可用时直接放行，
// 最终一致性由数据库唯一索引保证
type RedisLocker struct {
	client *redis.Client
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	if l == nil || l.client == nil {
		return func() {}, nil
	}

	token := model.GenerateUUID()
	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		logger.WithContext(ctx).Warn("Redis lock unavailable, continuing without it", zap.String("key", key), zap.Error(err))
		return func() {}, nil
	}
	if !ok {
		return nil, util.ErrWriteInProgress
	}

	return func() {
		if err := releaseScript.Run(context.Background(), l.client, []string{key}, token).Err(); err != nil {
			logger.Log.Warn("Failed to release Redis lock", zap.String("key", key), zap.Error(err))
		}
	}, nil
}
