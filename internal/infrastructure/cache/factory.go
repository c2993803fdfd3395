package cache

import (
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewIdempotencyStore picks the Redis store when a client is available and
// the in-memory store otherwise.
func NewIdempotencyStore(client redis.UniversalClient, logger *zap.Logger) shared.IdempotencyStore {
	if client != nil {
		logger.Info("Using Redis idempotency store")
		return NewRedisIdempotencyStore(client, DefaultIdempotencyPrefix)
	}
	logger.Warn("Redis not configured, using in-memory idempotency store; " +
		"request keys are not shared between instances")
	return NewInMemoryIdempotencyStore()
}
