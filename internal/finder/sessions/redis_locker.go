package sessions

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	errx "github.com/voice-finder/server/internal/core/error"
	logx "github.com/voice-finder/server/pkg/logger"
)

const (
	DefaultLockTTL   = 2 * time.Minute
	lockRetryBackoff = 50 * time.Millisecond
	unlockTimeout    = 3 * time.Second
)

// releaseScript deletes the lock only while it still carries our token, so
// an expired lock taken over by another replica is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker serializes a key across every process sharing the Redis
// server. Waiters in the same process queue on a local KeyedLocker first.
type RedisLocker struct {
	rdb    redis.Cmdable
	prefix string
	ttl    time.Duration
	local  *KeyedLocker
}

func NewRedisLocker(rdb redis.Cmdable, prefix string, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	return &RedisLocker{rdb: rdb, prefix: prefix, ttl: ttl, local: NewKeyedLocker()}
}

func (r *RedisLocker) lockKey(key string) string {
	if r.prefix == "" {
		return fmt.Sprintf("lock:%s", key)
	}
	return fmt.Sprintf("%s:lock:%s", r.prefix, key)
}

// Lock blocks until key is free or ctx is done. The lock expires after the
// configured TTL if the holder never releases it.
func (r *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	unlockLocal, err := r.local.Lock(ctx, key)
	if err != nil {
		return nil, err
	}

	redisKey := r.lockKey(key)
	token := uuid.NewString()
	for {
		ok, err := r.rdb.SetNX(ctx, redisKey, token, r.ttl).Result()
		if err != nil {
			unlockLocal()
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, errx.WrapRedis(err)
		}
		if ok {
			break
		}

		timer := time.NewTimer(lockRetryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			unlockLocal()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			defer unlockLocal()
			releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), unlockTimeout)
			defer cancel()
			if err := releaseScript.Run(releaseCtx, r.rdb, []string{redisKey}, token).Err(); err != nil {
				logx.Ctx(ctx).Warn().Err(err).Str("key", redisKey).Msg("failed to release redis lock, it will expire")
			}
		})
	}, nil
}
