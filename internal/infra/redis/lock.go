// File: internal/infra/redis/lock.go
package redis

import (
	"context"
	"time"

	"mindwell-companion/internal/domain"

	"github.com/google/uuid"
)

// Locker is a minimal distributed lock used so only one replica runs the
// history retention pass at a time.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (token string, err error)
	Unlock(ctx context.Context, key, token string) error
}

type RedisLocker struct {
	client RedisClient
}

func NewLocker(c RedisClient) *RedisLocker {
	return &RedisLocker{client: c}
}

func (l *RedisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, key, token, ttl)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.ErrLockNotAcquired
	}
	return token, nil
}

func (l *RedisLocker) Unlock(ctx context.Context, key, token string) error {
	// Best-effort: the TTL backstops a missed unlock. Token comparison
	// avoids releasing a lock that has already rolled over to another holder.
	current, err := l.client.Get(ctx, key)
	if err != nil {
		if IsNil(err) {
			return nil
		}
		return err
	}
	if current != token {
		return nil
	}
	return l.client.Del(ctx, key)
}
