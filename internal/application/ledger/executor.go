package ledger

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// RetryConfig bounds the retries of an operation that lost an
// optimistic-lock race
type RetryConfig struct {
	MaxAttempts int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
}

// DefaultRetryConfig returns three attempts with a short jittered backoff
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BaseBackoff: 10 * time.Millisecond,
		MaxBackoff:  200 * time.Millisecond,
	}
}

// backoff returns a jittered delay for the given (1-based) attempt
func (c RetryConfig) backoff(attempt int) time.Duration {
	if c.BaseBackoff <= 0 {
		return 0
	}
	d := c.BaseBackoff << (attempt - 1)
	if c.MaxBackoff > 0 && d > c.MaxBackoff {
		d = c.MaxBackoff
	}
	// full jitter in [d/2, d)
	half := d / 2
	return half + time.Duration(rand.Int64N(int64(half)+1))
}

// Operation describes one unit of work
type Operation struct {
	// Name identifies the operation, e.g. "order.create"
	Name string
	// IdempotencyKey is the client supplied request key, optional
	IdempotencyKey string
	// LockKeys are the entities to lock when a Locker is configured
	LockKeys []string
}

// Unit is handed to the body of an operation. It exposes the transactional
// repositories and collects domain events to publish after commit.
type Unit struct {
	Repositories
	events []shared.DomainEvent
}

// Track collects and clears the pending events of the given aggregates
func (u *Unit) Track(aggregates ...shared.AggregateRoot) {
	for _, a := range aggregates {
		u.events = append(u.events, a.PullDomainEvents()...)
	}
}

// Events returns the events collected so far
func (u *Unit) Events() []shared.DomainEvent {
	return u.events
}

// Executor runs operations against a TransactionScope
type Executor struct {
	scope       TransactionScope
	locker      Locker
	idempotency shared.IdempotencyStore
	idemConfig  shared.IdempotencyConfig
	retry       RetryConfig
	publisher   shared.EventPublisher
	metrics     *telemetry.LedgerMetrics
	logger      *zap.Logger
}

// ExecutorOption configures an Executor
type ExecutorOption func(*Executor)

// WithLocker layers a distributed lock in front of each operation
func WithLocker(locker Locker) ExecutorOption {
	return func(e *Executor) {
		if locker != nil {
			e.locker = locker
		}
	}
}

// WithIdempotency enables request-key deduplication
func WithIdempotency(store shared.IdempotencyStore, cfg shared.IdempotencyConfig) ExecutorOption {
	return func(e *Executor) {
		e.idempotency = store
		e.idemConfig = cfg
	}
}

// WithRetry overrides the conflict retry policy
func WithRetry(cfg RetryConfig) ExecutorOption {
	return func(e *Executor) {
		if cfg.MaxAttempts < 1 {
			cfg.MaxAttempts = 1
		}
		e.retry = cfg
	}
}

// WithEventPublisher publishes tracked events after commit
func WithEventPublisher(publisher shared.EventPublisher) ExecutorOption {
	return func(e *Executor) {
		e.publisher = publisher
	}
}

// WithMetrics records operation timings and conflict retries
func WithMetrics(metrics *telemetry.LedgerMetrics) ExecutorOption {
	return func(e *Executor) {
		e.metrics = metrics
	}
}

// WithLogger sets the executor logger
func WithLogger(logger *zap.Logger) ExecutorOption {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExecutor creates an Executor
func NewExecutor(scope TransactionScope, opts ...ExecutorOption) *Executor {
	e := &Executor{
		scope:  scope,
		locker: NoopLocker{},
		retry:  DefaultRetryConfig(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes fn as one transaction. A CONCURRENCY_CONFLICT, whether from
// a stale version or a lock held by another process, rolls the attempt back
// and runs fn again on fresh state, up to the configured number of attempts.
// Any other error is returned at once.
func (e *Executor) Run(ctx context.Context, op Operation, fn func(ctx context.Context, u *Unit) error) (err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", op.Name)
	started := time.Now()
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
		if e.metrics != nil {
			e.metrics.RecordOperation(ctx, op.Name, time.Since(started), err)
		}
	}()

	if op.IdempotencyKey != "" && e.idempotency != nil && e.idemConfig.Enabled {
		key := op.Name + ":" + op.IdempotencyKey
		fresh, markErr := e.idempotency.MarkProcessed(ctx, key, e.idemConfig.TTL)
		if markErr != nil {
			return markErr
		}
		if !fresh {
			return shared.NewDomainError(shared.CodeDuplicateRequest, "Request has already been processed").
				WithDetail("idempotencyKey", op.IdempotencyKey)
		}
		defer func() {
			if err == nil {
				return
			}
			if relErr := e.idempotency.Release(context.WithoutCancel(ctx), key); relErr != nil {
				e.logger.Warn("Failed to release idempotency key",
					zap.String("operation", op.Name),
					zap.Error(relErr))
			}
		}()
	}

	var events []shared.DomainEvent
	for attempt := 1; ; attempt++ {
		u := &Unit{}
		err = e.attempt(ctx, op, u, fn)
		if err == nil {
			events = u.events
			break
		}
		if !errors.Is(err, shared.ErrConcurrencyConflict) || attempt >= e.retry.MaxAttempts {
			return err
		}

		wait := e.retry.backoff(attempt)
		e.logger.Debug("Retrying after concurrency conflict",
			zap.String("operation", op.Name),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", wait))
		telemetry.AddEvent(span, "conflict_retry", "attempt", attempt)
		if e.metrics != nil {
			e.metrics.RecordConflictRetry(ctx, op.Name)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	e.publish(ctx, events)
	return nil
}

// attempt holds the operation's locks for exactly one transaction, so a
// conflicting writer can finish while this one backs off
func (e *Executor) attempt(ctx context.Context, op Operation, u *Unit, fn func(ctx context.Context, u *Unit) error) error {
	release, err := e.locker.Acquire(ctx, op.LockKeys...)
	if err != nil {
		return err
	}
	defer release(context.WithoutCancel(ctx))

	return e.scope.Execute(ctx, func(repos Repositories) error {
		u.Repositories = repos
		return fn(ctx, u)
	})
}

func (e *Executor) publish(ctx context.Context, events []shared.DomainEvent) {
	if e.publisher == nil || len(events) == 0 {
		return
	}
	if err := e.publisher.Publish(ctx, events...); err != nil {
		e.logger.Error("Failed to publish domain events", zap.Error(err), zap.Int("count", len(events)))
	}
}
