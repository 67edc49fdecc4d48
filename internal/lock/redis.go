package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Locker hands out short-lived per-key locks so two fulfillment runs for the
// same order cannot interleave.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// ErrHeld is returned when the key is already locked by another holder.
var ErrHeld = fmt.Errorf("lock held")

type redisLocker struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedis(addr, prefix string, ttl time.Duration) Locker {
	return &redisLocker{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		prefix: prefix,
		ttl:    ttl,
	}
}

func (l *redisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	fullKey := fmt.Sprintf("%s:lock:%s", l.prefix, key)
	ok, err := l.client.SetNX(ctx, fullKey, "1", l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", fullKey, err)
	}
	if !ok {
		return nil, ErrHeld
	}
	release := func() {
		// Best effort; the TTL bounds a missed delete.
		l.client.Del(context.Background(), fullKey)
	}
	return release, nil
}
