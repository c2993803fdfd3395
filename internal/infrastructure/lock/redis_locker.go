// Package lock provides the Redis-backed per-entity lock used in front of
// ledger operations.
package lock

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/aquaflow/backend/internal/application/ledger"
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/bsm/redislock"
	"go.uber.org/zap"
)

// KeyPrefix namespaces lock keys in Redis
const KeyPrefix = "aquaflow:lock:"

// Config bounds how long a lock lives and how long Acquire waits for it
type Config struct {
	TTL  time.Duration
	Wait time.Duration
}

// RedisLocker implements ledger.Locker with bsm/redislock.
//
// Keys are taken in sorted order so two operations over overlapping sets
// cannot deadlock. A key still held by someone else after Wait yields
// CONCURRENCY_CONFLICT. When Redis itself fails the operation proceeds
// unlocked; optimistic versioning still guards the write.
type RedisLocker struct {
	client *redislock.Client
	config Config
	logger *zap.Logger
}

// NewRedisLocker creates a locker on client
func NewRedisLocker(client redislock.RedisClient, cfg Config, logger *zap.Logger) *RedisLocker {
	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Second
	}
	if cfg.Wait < 0 {
		cfg.Wait = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisLocker{
		client: redislock.New(client),
		config: cfg,
		logger: logger,
	}
}

// Acquire implements ledger.Locker
func (l *RedisLocker) Acquire(ctx context.Context, keys ...string) (ledger.ReleaseFunc, error) {
	keys = normalize(keys)
	held := make([]*redislock.Lock, 0, len(keys))
	release := func(ctx context.Context) {
		for i := len(held) - 1; i >= 0; i-- {
			if err := held[i].Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
				l.logger.Warn("Failed to release lock", zap.String("key", held[i].Key()), zap.Error(err))
			}
		}
	}

	opts := &redislock.Options{RetryStrategy: l.retryStrategy()}
	for _, key := range keys {
		lk, err := l.client.Obtain(ctx, KeyPrefix+key, l.config.TTL, opts)
		switch {
		case err == nil:
			held = append(held, lk)
		case errors.Is(err, redislock.ErrNotObtained):
			release(context.WithoutCancel(ctx))
			l.logger.Warn("Lock busy", zap.String("key", key))
			return nil, shared.ErrConcurrencyConflict.WithDetail("lockKey", key)
		case ctx.Err() != nil:
			release(context.WithoutCancel(ctx))
			return nil, ctx.Err()
		default:
			l.logger.Warn("Lock backend unavailable, proceeding without lock",
				zap.String("key", key), zap.Error(err))
			return release, nil
		}
	}
	return release, nil
}

func (l *RedisLocker) retryStrategy() redislock.RetryStrategy {
	const step = 25 * time.Millisecond
	if l.config.Wait <= 0 {
		return redislock.NoRetry()
	}
	return redislock.LimitRetry(redislock.LinearBackoff(step), int(l.config.Wait/step))
}

func normalize(keys []string) []string {
	out := slices.Clone(keys)
	slices.Sort(out)
	return slices.Compact(out)
}

var _ ledger.Locker = (*RedisLocker)(nil)
