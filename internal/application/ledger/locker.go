package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ReleaseFunc releases locks obtained by a Locker
type ReleaseFunc func(ctx context.Context)

// Locker serializes work on the same entities across processes.
// Correctness never depends on it; optimistic locking still applies.
type Locker interface {
	// Acquire obtains all keys or none
	Acquire(ctx context.Context, keys ...string) (ReleaseFunc, error)
}

// NoopLocker is used when no distributed lock backend is configured
type NoopLocker struct{}

// Acquire always succeeds
func (NoopLocker) Acquire(context.Context, ...string) (ReleaseFunc, error) {
	return func(context.Context) {}, nil
}

// ProductLockKey returns the lock key for a product
func ProductLockKey(id uuid.UUID) string {
	return fmt.Sprintf("product:%s", id)
}

// CustomerLockKey returns the lock key for a customer
func CustomerLockKey(id uuid.UUID) string {
	return fmt.Sprintf("customer:%s", id)
}

// OrderLockKey returns the lock key for an order
func OrderLockKey(id uuid.UUID) string {
	return fmt.Sprintf("order:%s", id)
}

// PurchaseLockKey returns the lock key for a purchase
func PurchaseLockKey(id uuid.UUID) string {
	return fmt.Sprintf("purchase:%s", id)
}

// ImportLockKey returns the lock key for an import
func ImportLockKey(id uuid.UUID) string {
	return fmt.Sprintf("import:%s", id)
}

// ProductLockKeys returns lock keys for a set of products
func ProductLockKeys(ids []uuid.UUID) []string {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, ProductLockKey(id))
	}
	return keys
}

var _ Locker = NoopLocker{}
