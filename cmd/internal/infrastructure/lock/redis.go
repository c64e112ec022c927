package lock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
)

const retryInterval = 100 * time.Millisecond

// RedisLocker shares locks between every instance pointing at the same Redis.
type RedisLocker struct {
	client *redislock.Client
	opts   Options
}

func NewRedisLocker(rdb redislock.RedisClient, opts Options) *RedisLocker {
	return &RedisLocker{
		client: redislock.New(rdb),
		opts:   opts.withDefaults(),
	}
}

func (l *RedisLocker) Obtain(ctx context.Context, key string) (func(), error) {
	retries := int(l.opts.Wait / retryInterval)
	lock, err := l.client.Obtain(ctx, "lock:"+key, l.opts.TTL, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(retryInterval), retries),
	})

	if ctxErr := ctx.Err(); err != nil && ctxErr != nil {
		return nil, ctxErr
	}

	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrNotObtained
	}

	if err != nil {
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// The caller's context may already be cancelled here.
			if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
				log.Warnf("failed to release lock %s: %v", key, err)
			}
		})
	}, nil
}

// New picks the Redis locker when addr is set and reachable, falling back to
// the in-process locker otherwise.
func New(ctx context.Context, addr string, opts Options) Locker {
	if addr == "" {
		log.Infof("REDIS_ADDR not set, using in-process request locks")
		return NewLocalLocker(opts)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		PoolSize: 20,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warnf("failed to connect to redis at %s, using in-process request locks: %v", addr, err)
		_ = rdb.Close()
		return NewLocalLocker(opts)
	}

	log.Infof("connected to redis at %s", addr)
	return NewRedisLocker(rdb, opts)
}
