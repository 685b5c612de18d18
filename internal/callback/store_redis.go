package callback

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// 网关最长在约24小时内重发通知，保留窗口取其三倍
const redisRetainWindow = 72 * time.Hour

// RedisStore 基于 Redis SETNX 的幂等存储，多实例部署使用
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: "wxpay:notify:done:"}
}

func (s *RedisStore) MarkProcessed(ctx context.Context, bizID string) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, s.prefix+bizID, 1, redisRetainWindow).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (s *RedisStore) Processed(ctx context.Context, bizID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, s.prefix+bizID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
