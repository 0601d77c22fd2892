package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	errx "github.com/voice-finder/server/internal/core/error"
	"github.com/voice-finder/server/internal/finder/model"
	logx "github.com/voice-finder/server/pkg/logger"
)

// RedisStore keeps sessions as JSON strings. Every write refreshes the TTL.
type RedisStore struct {
	rdb    redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewRedisStore(rdb redis.Cmdable, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (r *RedisStore) sessionKey(threadID string) string {
	if r.prefix == "" {
		return fmt.Sprintf("session:%s", threadID)
	}
	return fmt.Sprintf("%s:session:%s", r.prefix, threadID)
}

func (r *RedisStore) Get(ctx context.Context, threadID string) (*model.Session, bool, error) {
	key := r.sessionKey(threadID)
	raw, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		logx.Ctx(ctx).Error().Err(err).Str("key", key).Msg("failed to load session from redis")
		return nil, false, errx.WrapRedis(err)
	}

	var s model.Session
	if err := sonic.UnmarshalString(raw, &s); err != nil {
		logx.Ctx(ctx).Error().Err(err).Str("thread_id", threadID).Msg("failed to unmarshal session")
		return nil, false, fmt.Errorf("unmarshal session: %w", err)
	}
	return &s, true, nil
}

func (r *RedisStore) Put(ctx context.Context, s *model.Session) error {
	if s == nil || s.ThreadID == "" {
		return errors.New("session without thread id")
	}
	b, err := sonic.MarshalString(s)
	if err != nil {
		logx.Ctx(ctx).Error().Err(err).Str("thread_id", s.ThreadID).Msg("failed to marshal session")
		return fmt.Errorf("marshal session: %w", err)
	}
	key := r.sessionKey(s.ThreadID)
	if err := r.rdb.Set(ctx, key, b, r.ttl).Err(); err != nil {
		logx.Ctx(ctx).Error().Err(err).Str("key", key).Msg("failed to store session in redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, threadID string) error {
	key := r.sessionKey(threadID)
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		logx.Ctx(ctx).Error().Err(err).Str("key", key).Msg("failed to delete session from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
